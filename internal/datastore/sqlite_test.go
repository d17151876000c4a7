package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreUpsertsTitles(t *testing.T) {
	store, err := OpenSQLiteStore("file:sqlite_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, InsertTitles(store, []TitleRecord{
		{ImdbID: "0133093", Title: "The Matrix", Year: 1999, Rating: 8.5},
	}))

	// A second export of the same title refreshes the row in place.
	require.NoError(t, InsertTitles(store, []TitleRecord{
		{ImdbID: "0133093", Title: "The Matrix", Year: 1999, Rating: 8.7},
	}))

	var count int
	var rating float64
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*), MAX(rating) FROM titles").Scan(&count, &rating))
	assert.Equal(t, 1, count)
	assert.Equal(t, 8.7, rating)
}

func TestSQLiteStoreListColumns(t *testing.T) {
	store, err := OpenSQLiteStore("file:sqlite_columns_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, InsertTitles(store, []TitleRecord{
		{ImdbID: "0133093", Title: "The Matrix", Genres: []string{"Action", "Sci-Fi"}},
	}))

	var genres string
	require.NoError(t, store.db.QueryRow("SELECT genres FROM titles").Scan(&genres))
	assert.Equal(t, "Action, Sci-Fi", genres)
}
