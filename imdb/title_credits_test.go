package imdb

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectionData(entity, field, edges string) string {
	return `{"` + entity + `":{"` + field + `":{"edges":[` + edges + `],"pageInfo":{"endCursor":null,"hasNextPage":false}}}}`
}

func TestTitleCast(t *testing.T) {
	edges := `
		{"node":{
			"name":{"id":"nm0000206","nameText":{"text":"Keanu Reeves"},
				"primaryImage":{"url":"https://m.media-amazon.com/images/M/keanu._V1_.jpg","width":1000,"height":1480}},
			"characters":[{"name":"Neo"}],
			"attributes":null
		}},
		{"node":{
			"name":{"id":"nm0000401","nameText":{"text":"Laurence Fishburne"},"primaryImage":null},
			"characters":[{"name":"Morpheus"}],
			"attributes":[{"text":"credit only"}]
		}}`

	var sentFilter string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		sentFilter = req.Query
		_, _ = w.Write([]byte(`{"data":` + connectionData("title", "credits", edges) + `}`))
	}))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	cast, err := title.Cast(context.Background())
	require.NoError(t, err)
	require.Len(t, cast, 2)

	assert.Contains(t, sentFilter, `filter: {categories: ["cast"]}`)

	assert.Equal(t, "0000206", cast[0].ID)
	assert.Equal(t, "Keanu Reeves", cast[0].Name)
	assert.Equal(t, []string{"Neo"}, cast[0].Characters)
	assert.Contains(t, cast[0].Thumbnail, "QL75_", "cast thumbnail derived")

	assert.Equal(t, "Laurence Fishburne", cast[1].Name)
	assert.Equal(t, []string{"credit only"}, cast[1].Attributes)
	assert.Empty(t, cast[1].Thumbnail, "no image means no thumbnail")
}

func TestTitleCrewGroupsByCategory(t *testing.T) {
	edges := `
		{"node":{"name":{"id":"nm0905154","nameText":{"text":"Lana Wachowski"}},"category":{"id":"director"}}},
		{"node":{"name":{"id":"nm0905152","nameText":{"text":"Lilly Wachowski"}},"category":{"id":"director"}}},
		{"node":{"name":{"id":"nm0000206","nameText":{"text":"Keanu Reeves"}},"category":{"id":"actor"}}},
		{"node":{"name":{"id":"nm0300665","nameText":{"text":"John Gaeta"}},"category":{"id":"special_effects"},
			"jobs":[{"text":"visual effects supervisor"}]}},
		{"node":{"name":{"id":"nm9999999","nameText":{"text":"Somebody New"}},"category":{"id":"holographic_department"}}}`

	client := newTestClient(t, gqlHandler(t, connectionData("title", "credits", edges), nil))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	crew, err := title.Crew(context.Background())
	require.NoError(t, err)

	require.Len(t, crew["director"], 2)
	assert.Equal(t, "Lana Wachowski", crew["director"][0].Name)

	// snake_case category id remapped to a camelCase key.
	require.Len(t, crew["specialEffects"], 1)
	assert.Equal(t, "visual effects supervisor", crew["specialEffects"][0].Job)

	// Cast categories are excluded from crew, unknown ids dropped.
	assert.NotContains(t, crew, "actor")
	assert.NotContains(t, crew, "holographic_department")
	assert.NotContains(t, crew, "holographicDepartment")
}

func TestTitleCrewConvenienceViews(t *testing.T) {
	edges := `
		{"node":{"name":{"id":"nm0905154","nameText":{"text":"Lana Wachowski"}},"category":{"id":"director"}}},
		{"node":{"name":{"id":"nm0000982","nameText":{"text":"Don Davis"}},"category":{"id":"composer"}}}`

	var requests int
	client := newTestClient(t, gqlHandler(t, connectionData("title", "credits", edges), &requests))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)
	ctx := context.Background()

	directors, err := title.Directors(ctx)
	require.NoError(t, err)
	require.Len(t, directors, 1)
	assert.Equal(t, "Lana Wachowski", directors[0].Name)

	composers, err := title.Composers(ctx)
	require.NoError(t, err)
	require.Len(t, composers, 1)

	writers, err := title.Writers(ctx)
	require.NoError(t, err)
	assert.Empty(t, writers)

	assert.Equal(t, 1, requests, "convenience views share the crew fetch")
}

func TestTitlePrincipalCredits(t *testing.T) {
	data := `{"title":{"principalCredits":[
		{"category":{"id":"director"},"credits":[{"name":{"id":"nm0905154","nameText":{"text":"Lana Wachowski"}}}]},
		{"category":{"id":"cast"},"credits":[
			{"name":{"id":"nm0000206","nameText":{"text":"Keanu Reeves"}}},
			{"name":{"id":"nm0000401","nameText":{"text":"Laurence Fishburne"}}}
		]}
	]}}`
	client := newTestClient(t, gqlHandler(t, data, nil))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	principals, err := title.PrincipalCredits(context.Background())
	require.NoError(t, err)

	require.Len(t, principals["director"], 1)
	require.Len(t, principals["cast"], 2)
	assert.Equal(t, "0000206", principals["cast"][0].ID)
}
