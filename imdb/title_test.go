package imdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixMainData = `{"title":{
	"titleText":{"text":"The Matrix"},
	"originalTitleText":{"text":"The Matrix"},
	"releaseYear":{"year":1999,"endYear":0},
	"titleType":{"id":"movie"},
	"runtime":{"seconds":8160},
	"ratingsSummary":{"aggregateRating":8.7,"voteCount":2000000},
	"metacritic":{"metascore":{"score":73}},
	"plot":{"plotText":{"plainText":"A computer hacker learns the truth."}},
	"primaryImage":{"url":"https://m.media-amazon.com/images/M/poster._V1_.jpg","width":1000,"height":1480}
}}`

func newMatrixTitle(t *testing.T, requests *int) *Title {
	t.Helper()
	client := newTestClient(t, gqlHandler(t, matrixMainData, requests))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)
	return title
}

func TestTitleMainAccessors(t *testing.T) {
	title := newMatrixTitle(t, nil)
	ctx := context.Background()

	name, err := title.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", name)

	year, err := title.Year(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1999, year)

	kind, err := title.Kind(ctx)
	require.NoError(t, err)
	assert.Equal(t, "movie", kind)

	runtime, err := title.Runtime(ctx)
	require.NoError(t, err)
	assert.Equal(t, 136, runtime, "8160 seconds rounds to 136 minutes")

	rating, err := title.Rating(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 8.7, rating, 0.001)

	votes, err := title.Votes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000000, votes)

	metascore, err := title.Metacritic(ctx)
	require.NoError(t, err)
	assert.Equal(t, 73, metascore)

	plot, err := title.Plot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A computer hacker learns the truth.", plot)
}

func TestTitleMemoizesMainBundle(t *testing.T) {
	var requests int
	title := newMatrixTitle(t, &requests)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := title.Title(ctx)
		require.NoError(t, err)
		_, err = title.Year(ctx)
		require.NoError(t, err)
		_, err = title.Rating(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, requests, "all scalar accessors share one memoized fetch")
}

func TestTitleUpstreamUnavailableYieldsDefaults(t *testing.T) {
	var requests int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)
	ctx := context.Background()

	name, err := title.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", name)

	year, err := title.Year(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, year)

	poster, err := title.Poster(ctx)
	require.NoError(t, err)
	assert.True(t, poster.IsZero())

	// Even the empty result is memoized: no retry storm on a dead upstream.
	assert.Equal(t, 1, requests)
}

func TestNewTitleCanonicalizesID(t *testing.T) {
	client := newTestClient(t, gqlHandler(t, `{}`, nil))

	tests := []struct {
		input string
		want  string
	}{
		{"tt0133093", "0133093"},
		{"0133093", "0133093"},
		{"133093", "0133093"},
		{"tt12345678", "12345678"},
	}
	for _, tt := range tests {
		title, err := NewTitle(client, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, title.ID(), tt.input)
	}

	_, err := NewTitle(client, "nope")
	assert.Error(t, err)
}

func TestTitlePosterThumbnailURL(t *testing.T) {
	title := newMatrixTitle(t, nil)

	url, err := title.PosterThumbnailURL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, url, "._V1_QL75_")
	assert.Contains(t, url, "SX190")
}

func TestTitleGenres(t *testing.T) {
	var requests int
	client := newTestClient(t, gqlHandler(t,
		`{"title":{"genres":{"genres":[{"text":"Action"},{"text":"Sci-Fi"}]}}}`, &requests))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	genres, err := title.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, genres)

	_, err = title.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestTitleLocales(t *testing.T) {
	var requests int
	client := newTestClient(t, gqlHandler(t,
		`{"title":{
			"spokenLanguages":{"spokenLanguages":[{"id":"en","text":"English"}]},
			"countriesOfOrigin":{"countries":[{"id":"US","text":"United States"},{"id":"AU","text":"Australia"}]}
		}}`, &requests))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)
	ctx := context.Background()

	languages, err := title.Languages(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 1)
	assert.Equal(t, Locale{Code: "en", Name: "English"}, languages[0])

	countries, err := title.Countries(ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 2)

	assert.Equal(t, 1, requests, "languages and countries share one fetch")
}

func TestTitleTaglines(t *testing.T) {
	client := newTestClient(t, gqlHandler(t, taglinePage(0, 3, "", false), nil))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	taglines, err := title.Taglines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tagline 0", "tagline 1", "tagline 2"}, taglines)
}

func TestTitlePlots(t *testing.T) {
	page := `{"title":{"plots":{"edges":[
		{"node":{"plotText":{"plainText":"Short plot."}}},
		{"node":{"plotText":null}},
		{"node":{"plotText":{"plainText":"Longer plot."}}}
	],"pageInfo":{"endCursor":null,"hasNextPage":false}}}}`
	client := newTestClient(t, gqlHandler(t, page, nil))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	plots, err := title.Plots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Short plot.", "Longer plot."}, plots)
}
