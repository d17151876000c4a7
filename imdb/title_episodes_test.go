package imdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleSeasons(t *testing.T) {
	client := newTestClient(t, gqlHandler(t,
		`{"title":{"episodes":{"seasons":[{"number":1},{"number":2},{"number":3}]}}}`, nil))
	title, err := NewTitle(client, "tt0944947")
	require.NoError(t, err)

	seasons, err := title.Seasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seasons)
}

func TestTitleEpisodesGroupedBySeason(t *testing.T) {
	edges := `
		{"node":{
			"id":"tt1480055","titleText":{"text":"Winter Is Coming"},
			"releaseDate":{"day":17,"month":4,"year":2011},
			"plot":{"plotText":{"plainText":"Lord Stark is troubled."}},
			"ratingsSummary":{"aggregateRating":8.9,"voteCount":50000},
			"series":{"displayableEpisodeNumber":{
				"episodeNumber":{"episodeNumber":1},
				"displayableSeason":{"season":"1"}}},
			"primaryImage":{"url":"https://m.media-amazon.com/images/M/ep1._V1_.jpg","width":1920,"height":1080}
		}},
		{"node":{
			"id":"tt1668746","titleText":{"text":"The Kingsroad"},
			"releaseDate":{"day":24,"month":4,"year":2011},
			"series":{"displayableEpisodeNumber":{
				"episodeNumber":{"episodeNumber":2},
				"displayableSeason":{"season":"1"}}}
		}},
		{"node":{
			"id":"tt1971833","titleText":{"text":"The North Remembers"},
			"series":{"displayableEpisodeNumber":{
				"episodeNumber":{"episodeNumber":1},
				"displayableSeason":{"season":"2"}}}
		}},
		{"node":{
			"id":"tt9999901","titleText":{"text":"Unaired Special"},
			"series":{"displayableEpisodeNumber":{
				"episodeNumber":{"episodeNumber":1},
				"displayableSeason":{"season":"Unknown"}}}
		}}`

	data := `{"title":{"episodes":{"episodes":{"edges":[` + edges + `],"pageInfo":{"endCursor":null,"hasNextPage":false}}}}}`
	client := newTestClient(t, gqlHandler(t, data, nil))
	title, err := NewTitle(client, "tt0944947")
	require.NoError(t, err)

	episodes, err := title.Episodes(context.Background())
	require.NoError(t, err)

	require.Len(t, episodes[1], 2)
	require.Len(t, episodes[2], 1)
	// Unparseable season labels land under key 0.
	require.Len(t, episodes[0], 1)
	assert.Equal(t, "Unaired Special", episodes[0][0].Title)

	first := episodes[1][0]
	assert.Equal(t, "1480055", first.ID)
	assert.Equal(t, "Winter Is Coming", first.Title)
	assert.Equal(t, 1, first.Episode)
	assert.Equal(t, Date{Day: 17, Month: "April", Mon: 4, Year: 2011}, first.AirDate)
	assert.InDelta(t, 8.9, first.Rating, 0.001)
	assert.Contains(t, first.Thumbnail, "QL75_")

	second := episodes[1][1]
	assert.True(t, second.Image.IsZero())
	assert.Empty(t, second.Thumbnail)
	assert.Equal(t, 0.0, second.Rating)
}

func TestTitleEpisodesEmptyForMovies(t *testing.T) {
	client := newTestClient(t, gqlHandler(t, `{"title":{"episodes":null}}`, nil))
	title, err := NewTitle(client, "tt0133093")
	require.NoError(t, err)

	episodes, err := title.Episodes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, episodes)
}
