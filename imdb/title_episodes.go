package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Episode is one episode of a series.
type Episode struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Season    int     `json:"season" yaml:"season"`
	Episode   int     `json:"episode" yaml:"episode"`
	AirDate   Date    `json:"airDate" yaml:"airDate"`
	Plot      string  `json:"plot,omitempty" yaml:"plot,omitempty"`
	Rating    float64 `json:"rating" yaml:"rating"`
	Votes     int     `json:"votes" yaml:"votes"`
	Image     Image   `json:"image,omitempty" yaml:"image,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

const titleSeasonsQuery = `query TitleSeasons($id: ID!) {
  title(id: $id) {
    episodes {
      seasons {
        number
      }
    }
  }
}`

// Seasons returns the season numbers of a series, empty for titles
// without episodes.
func (t *Title) Seasons(ctx context.Context) ([]int, error) {
	if t.fetched["seasons"] {
		return t.seasons, nil
	}

	data, err := t.client.query(ctx, "TitleSeasons", titleSeasonsQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title *struct {
			Episodes *struct {
				Seasons []struct {
					Number int `json:"number"`
				} `json:"seasons"`
			} `json:"episodes"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("TitleSeasons: %w", err)
	}

	if payload.Title != nil && payload.Title.Episodes != nil {
		for _, s := range payload.Title.Episodes.Seasons {
			t.seasons = append(t.seasons, s.Number)
		}
	}

	t.fetched["seasons"] = true
	return t.seasons, nil
}

const episodeNodeFields = `          id
          titleText {
            text
          }
          releaseDate {
            day
            month
            year
          }
          plot {
            plotText {
              plainText
            }
          }
          ratingsSummary {
            aggregateRating
            voteCount
          }
          series {
            displayableEpisodeNumber {
              episodeNumber {
                episodeNumber
              }
              displayableSeason {
                season
              }
            }
          }
          primaryImage {
            url
            width
            height
          }`

// Episodes returns every episode of a series keyed by season number,
// in server order within a season. Episodes whose season cannot be
// parsed land under key 0. Empty for titles without episodes.
func (t *Title) Episodes(ctx context.Context) (map[int][]Episode, error) {
	if t.fetched["episodes"] {
		return t.episodes, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleEpisodes", "episodes.episodes",
		episodeNodeFields, "")
	if err != nil {
		return nil, err
	}

	thumb := t.client.settings.EpisodeThumb
	episodes := make(map[int][]Episode)
	for _, raw := range nodes {
		var node struct {
			ID          string          `json:"id"`
			TitleText   *textValue      `json:"titleText"`
			ReleaseDate *dateComponents `json:"releaseDate"`
			Plot        *struct {
				PlotText *plainTextValue `json:"plotText"`
			} `json:"plot"`
			RatingsSummary *struct {
				AggregateRating float64 `json:"aggregateRating"`
				VoteCount       int     `json:"voteCount"`
			} `json:"ratingsSummary"`
			Series *struct {
				DisplayableEpisodeNumber *struct {
					EpisodeNumber *struct {
						EpisodeNumber int `json:"episodeNumber"`
					} `json:"episodeNumber"`
					DisplayableSeason *struct {
						Season string `json:"season"`
					} `json:"displayableSeason"`
				} `json:"displayableEpisodeNumber"`
			} `json:"series"`
			PrimaryImage *imageValue `json:"primaryImage"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}

		ep := Episode{
			ID:      trimRefID(node.ID),
			Title:   node.TitleText.text(),
			AirDate: node.ReleaseDate.date(),
			Image:   node.PrimaryImage.image(),
		}
		if node.Plot != nil {
			ep.Plot = node.Plot.PlotText.text()
		}
		if node.RatingsSummary != nil {
			ep.Rating = node.RatingsSummary.AggregateRating
			ep.Votes = node.RatingsSummary.VoteCount
		}
		if node.Series != nil && node.Series.DisplayableEpisodeNumber != nil {
			den := node.Series.DisplayableEpisodeNumber
			if den.EpisodeNumber != nil {
				ep.Episode = den.EpisodeNumber.EpisodeNumber
			}
			if den.DisplayableSeason != nil {
				// "Unknown" and similar labels parse to 0.
				ep.Season, _ = strconv.Atoi(den.DisplayableSeason.Season)
			}
		}
		if !ep.Image.IsZero() {
			ep.Thumbnail = ep.Image.ThumbnailURL(thumb.Width, thumb.Height)
		}

		episodes[ep.Season] = append(episodes[ep.Season], ep)
	}

	t.episodes = episodes
	t.fetched["episodes"] = true
	return t.episodes, nil
}
