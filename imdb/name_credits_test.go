package imdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameCreditsGroupedByCategory(t *testing.T) {
	edges := `
		{"node":{
			"title":{"id":"tt0133093","titleText":{"text":"The Matrix"},"releaseYear":{"year":1999},"titleType":{"id":"movie"}},
			"category":{"id":"actor"},
			"characters":[{"name":"Neo"}]
		}},
		{"node":{
			"title":{"id":"tt0990407","titleText":{"text":"The Great Warming"},"releaseYear":{"year":2006},"titleType":{"id":"movie"}},
			"category":{"id":"producer"},
			"jobs":[{"text":"executive producer"}]
		}},
		{"node":{
			"title":{"id":"tt0000001","titleText":{"text":"Dropped"},"releaseYear":null},
			"category":{"id":"brand_ambassador"}
		}},
		{"node":{"title":null,"category":{"id":"actor"}}}`

	var requests int
	client := newTestClient(t, gqlHandler(t, connectionData("name", "credits", edges), &requests))
	name, err := NewName(client, "nm0000206")
	require.NoError(t, err)

	credits, err := name.Credits(context.Background())
	require.NoError(t, err)

	require.Len(t, credits["actor"], 1)
	actor := credits["actor"][0]
	assert.Equal(t, "0133093", actor.ID)
	assert.Equal(t, "The Matrix", actor.Title)
	assert.Equal(t, 1999, actor.Year)
	assert.Equal(t, []string{"Neo"}, actor.Characters)

	require.Len(t, credits["producer"], 1)
	assert.Equal(t, "executive producer", credits["producer"][0].Job)

	assert.Len(t, credits, 2, "unknown categories and nil titles dropped")

	// Second call is memoized.
	_, err = name.Credits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}
