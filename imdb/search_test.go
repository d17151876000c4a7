package imdb

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchNameBlankTermSkipsNetwork(t *testing.T) {
	var requests int
	client := newTestClient(t, gqlHandler(t, `{}`, &requests))

	for _, term := range []string{"", "   ", "\t\n"} {
		results, err := client.SearchName(context.Background(), term)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Equal(t, 0, requests)
}

func TestSearchName(t *testing.T) {
	data := `{"mainSearch":{"edges":[
		{"node":{"entity":{
			"id":"nm0000206",
			"nameText":{"text":"Keanu Reeves"},
			"primaryImage":{"url":"https://m.media-amazon.com/images/M/keanu._V1_.jpg","width":1000,"height":1480},
			"primaryProfessions":[{"category":{"text":"Actor"}}],
			"knownFor":{"edges":[{"node":{"title":{"titleText":{"text":"The Matrix"}}}}]}
		}}},
		{"node":{"entity":{"id":"nm0005349","nameText":{"text":"Keanu Smith"},"primaryImage":null}}},
		{"node":{"entity":null}}
	]}}`

	var sentVars map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		sentVars = req.Variables
		_, _ = w.Write([]byte(`{"data":` + data + `}`))
	}))

	results, err := client.SearchName(context.Background(), "  keanu ")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "keanu", sentVars["term"], "term is trimmed before sending")
	assert.Equal(t, float64(10), sentVars["limit"])

	assert.Equal(t, "0000206", results[0].ID)
	assert.Equal(t, "Keanu Reeves", results[0].Name)
	assert.Equal(t, "Actor", results[0].Profession)
	assert.Equal(t, "The Matrix", results[0].KnownFor)
	assert.Contains(t, results[0].Thumbnail, "QL75_")

	assert.Empty(t, results[1].Thumbnail)
}

func TestSearchKeyword(t *testing.T) {
	data := `{"mainSearch":{"edges":[
		{"node":{"entity":{"id":"kw0003342","text":{"text":"dystopia"},"titles":{"total":14520}}}},
		{"node":{"entity":{"id":"kw0517557","text":{"text":"dystopian future"},"titles":null}}}
	]}}`
	client := newTestClient(t, gqlHandler(t, data, nil))

	results, err := client.SearchKeyword(context.Background(), "dystopia")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, KeywordSearchResult{ID: "0003342", Text: "dystopia", TitleCount: 14520}, results[0])
	assert.Equal(t, 0, results[1].TitleCount)
}

func TestSearchKeywordBlankTermSkipsNetwork(t *testing.T) {
	var requests int
	client := newTestClient(t, gqlHandler(t, `{}`, &requests))

	results, err := client.SearchKeyword(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, requests)
}

func TestAdvancedSearch(t *testing.T) {
	data := `{"advancedTitleSearch":{"edges":[
		{"node":{"title":{
			"id":"tt0133093",
			"titleText":{"text":"The Matrix"},
			"releaseYear":{"year":1999},
			"titleType":{"id":"movie"},
			"ratingsSummary":{"aggregateRating":8.7,"voteCount":2000000},
			"primaryImage":{"url":"https://m.media-amazon.com/images/M/poster._V1_.jpg","width":1000,"height":1480},
			"principalCredits":[{"credits":[
				{"name":{"nameText":{"text":"Keanu Reeves"}}},
				{"name":{"nameText":{"text":"Laurence Fishburne"}}}
			]}]
		}}}
	]}}`

	var sentVars map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		sentVars = req.Variables
		_, _ = w.Write([]byte(`{"data":` + data + `}`))
	}))

	results, err := client.AdvancedSearch(context.Background(), AdvancedSearchOptions{
		Term:      "matrix",
		Kinds:     []string{"movie"},
		StartDate: "1999-01-01",
		EndDate:   "1999-12-31",
		MinRating: 8,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "0133093", results[0].ID)
	assert.Equal(t, "Keanu Reeves, Laurence Fishburne", results[0].Cast)
	assert.InDelta(t, 8.7, results[0].Rating, 0.001)

	constraints, ok := sentVars["constraints"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, constraints, "titleTextConstraint")
	assert.Contains(t, constraints, "titleTypeConstraint")
	assert.Contains(t, constraints, "releaseDateConstraint")
	assert.Contains(t, constraints, "userRatingsConstraint")

	sort, ok := sentVars["sort"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "POPULARITY", sort["sortBy"])
	assert.Equal(t, "ASC", sort["sortOrder"])
}

func TestAdvancedSearchFailsClosed(t *testing.T) {
	var requests int
	client := newTestClient(t, gqlHandler(t, `{}`, &requests))
	ctx := context.Background()

	// Malformed dates never reach the network.
	results, err := client.AdvancedSearch(ctx, AdvancedSearchOptions{
		Term:      "matrix",
		StartDate: "99-01-01",
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = client.AdvancedSearch(ctx, AdvancedSearchOptions{
		Term:    "matrix",
		EndDate: "1999/12/31",
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	// No constraints at all: nothing to search for.
	results, err = client.AdvancedSearch(ctx, AdvancedSearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Equal(t, 0, requests)
}

func TestAdvancedSearchOpenEndedDates(t *testing.T) {
	var sentVars map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		sentVars = req.Variables
		_, _ = w.Write([]byte(`{"data":{"advancedTitleSearch":{"edges":[]}}}`))
	}))

	_, err := client.AdvancedSearch(context.Background(), AdvancedSearchOptions{EndDate: "1999-12-31"})
	require.NoError(t, err)

	constraints := sentVars["constraints"].(map[string]any)
	dateConstraint := constraints["releaseDateConstraint"].(map[string]any)
	dateRange := dateConstraint["releaseDateRange"].(map[string]any)
	assert.Equal(t, "1900-01-01", dateRange["start"], "empty start falls back to 1900-01-01")
	assert.Equal(t, "1999-12-31", dateRange["end"])
}
