package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CalendarEntry is one upcoming release from the coming-soon calendar.
type CalendarEntry struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Release   Date     `json:"release" yaml:"release"`
	Genres    []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Cast      []string `json:"cast,omitempty" yaml:"cast,omitempty"`
	Image     Image    `json:"image,omitempty" yaml:"image,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

const comingSoonQuery = `query ComingSoon($after: Date!) {
  comingSoon(first: 100, comingSoonType: MOVIE, releasingOnOrAfter: $after, sort: {sortBy: RELEASE_DATE, sortOrder: ASC}) {
    edges {
      node {
        id
        titleText {
          text
        }
        releaseDate {
          day
          month
          year
        }
        genres {
          genres {
            text
          }
        }
        principalCredits {
          credits {
            name {
              id
              nameText {
                text
              }
            }
          }
        }
        primaryImage {
          url
          width
          height
        }
      }
    }
  }
}`

// comingSoonFrom is swapped by tests to pin the calendar window.
var comingSoonFrom = func() string {
	return time.Now().Format("2006-01-02")
}

// ComingSoon returns upcoming releases in release-date order, with
// thumbnails cut to the calendar box. Not memoized: the window moves
// with the clock, so the response cache alone bounds refetching.
func (c *Client) ComingSoon(ctx context.Context) ([]CalendarEntry, error) {
	data, err := c.query(ctx, "ComingSoon", comingSoonQuery, map[string]any{"after": comingSoonFrom()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		ComingSoon *struct {
			Edges []struct {
				Node struct {
					ID          string          `json:"id"`
					TitleText   *textValue      `json:"titleText"`
					ReleaseDate *dateComponents `json:"releaseDate"`
					Genres      *struct {
						Genres []textValue `json:"genres"`
					} `json:"genres"`
					PrincipalCredits []struct {
						Credits []struct {
							Name *nameRef `json:"name"`
						} `json:"credits"`
					} `json:"principalCredits"`
					PrimaryImage *imageValue `json:"primaryImage"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"comingSoon"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("ComingSoon: %w", err)
	}
	if payload.ComingSoon == nil {
		return nil, nil
	}

	thumb := c.settings.CalendarThumb
	var entries []CalendarEntry
	for _, edge := range payload.ComingSoon.Edges {
		node := edge.Node
		entry := CalendarEntry{
			ID:      trimRefID(node.ID),
			Title:   node.TitleText.text(),
			Release: node.ReleaseDate.date(),
			Image:   node.PrimaryImage.image(),
		}
		if entry.Title == "" {
			continue
		}
		if node.Genres != nil {
			for _, g := range node.Genres.Genres {
				if g.Text != "" {
					entry.Genres = append(entry.Genres, g.Text)
				}
			}
		}
		for _, group := range node.PrincipalCredits {
			for _, credit := range group.Credits {
				if credit.Name != nil && credit.Name.name() != "" {
					entry.Cast = append(entry.Cast, credit.Name.name())
				}
			}
		}
		if !entry.Image.IsZero() {
			entry.Thumbnail = entry.Image.ThumbnailURL(thumb.Width, thumb.Height)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
