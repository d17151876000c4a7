package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Title":          "title",
		"ImdbID":         "imdb_id",
		"PosterURL":      "poster_url",
		"RuntimeMinutes": "runtime_minutes",
		"OriginalTitle":  "original_title",
	}
	for input, want := range tests {
		assert.Equal(t, want, toSnakeCase(input), input)
	}
}

func TestStructToMap(t *testing.T) {
	type embedded struct {
		Rating float64
	}
	type row struct {
		embedded
		ImdbID  string
		Genres  []string
		Skipped *int
		hidden  string
	}

	m := structToMap(row{
		embedded: embedded{Rating: 8.7},
		ImdbID:   "0133093",
		Genres:   []string{"Action", "Sci-Fi"},
		hidden:   "nope",
	})

	assert.Equal(t, "0133093", m["imdb_id"])
	assert.Equal(t, "Action, Sci-Fi", m["genres"])
	assert.Equal(t, 8.7, m["rating"])
	assert.Nil(t, m["skipped"])
	assert.NotContains(t, m, "hidden")
}
