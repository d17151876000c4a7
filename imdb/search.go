package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// NameSearchResult is one hit from SearchName.
type NameSearchResult struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Profession string `json:"profession,omitempty" yaml:"profession,omitempty"`
	KnownFor   string `json:"knownFor,omitempty" yaml:"knownFor,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// KeywordSearchResult is one hit from SearchKeyword.
type KeywordSearchResult struct {
	ID         string `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	TitleCount int    `json:"titleCount" yaml:"titleCount"`
}

// TitleSearchResult is one hit from SearchTitle or AdvancedSearch.
type TitleSearchResult struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Year      int     `json:"year" yaml:"year"`
	Kind      string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Rating    float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Votes     int     `json:"votes,omitempty" yaml:"votes,omitempty"`
	Cast      string  `json:"cast,omitempty" yaml:"cast,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

const searchNamesQuery = `query SearchNames($term: String!, $limit: Int!) {
  mainSearch(first: $limit, options: {searchTerm: $term, type: NAME}) {
    edges {
      node {
        entity {
          ... on Name {
            id
            nameText {
              text
            }
            primaryImage {
              url
              width
              height
            }
            primaryProfessions {
              category {
                text
              }
            }
            knownFor(first: 1) {
              edges {
                node {
                  title {
                    titleText {
                      text
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

// SearchName searches people by name. A blank term returns an empty
// list without touching the network.
func (c *Client) SearchName(ctx context.Context, term string) ([]NameSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	limit := c.settings.NameSearchLimit
	if limit <= 0 {
		limit = 10
	}

	data, err := c.queryIn(ctx, "search_cache", "SearchNames", searchNamesQuery,
		map[string]any{"term": term, "limit": limit})
	if err != nil {
		return nil, err
	}

	var payload struct {
		MainSearch *struct {
			Edges []struct {
				Node *struct {
					Entity *struct {
						nameRef
						PrimaryProfessions []struct {
							Category *textValue `json:"category"`
						} `json:"primaryProfessions"`
						KnownFor *struct {
							Edges []struct {
								Node *struct {
									Title *titleRef `json:"title"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"knownFor"`
					} `json:"entity"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"mainSearch"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("SearchNames: %w", err)
	}

	var results []NameSearchResult
	if payload.MainSearch == nil {
		return nil, nil
	}
	thumb := c.settings.CastThumb
	for _, edge := range payload.MainSearch.Edges {
		if edge.Node == nil || edge.Node.Entity == nil {
			continue
		}
		entity := edge.Node.Entity
		result := NameSearchResult{
			ID:   entity.refID(),
			Name: entity.name(),
		}
		if result.ID == "" {
			continue
		}
		if len(entity.PrimaryProfessions) > 0 {
			result.Profession = entity.PrimaryProfessions[0].Category.text()
		}
		if entity.KnownFor != nil && len(entity.KnownFor.Edges) > 0 {
			if node := entity.KnownFor.Edges[0].Node; node != nil {
				result.KnownFor = node.Title.title()
			}
		}
		if img := entity.image(); !img.IsZero() {
			result.Thumbnail = img.ThumbnailURL(thumb.Width, thumb.Height)
		}
		results = append(results, result)
	}
	return results, nil
}

const searchKeywordsQuery = `query SearchKeywords($term: String!, $limit: Int!) {
  mainSearch(first: $limit, options: {searchTerm: $term, type: KEYWORD}) {
    edges {
      node {
        entity {
          ... on Keyword {
            id
            text {
              text
            }
            titles(first: 0) {
              total
            }
          }
        }
      }
    }
  }
}`

// SearchKeyword searches plot keywords. A blank term returns an empty
// list without touching the network.
func (c *Client) SearchKeyword(ctx context.Context, term string) ([]KeywordSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	limit := c.settings.KeywordSearchLimit
	if limit <= 0 {
		limit = 25
	}

	data, err := c.queryIn(ctx, "search_cache", "SearchKeywords", searchKeywordsQuery,
		map[string]any{"term": term, "limit": limit})
	if err != nil {
		return nil, err
	}

	var payload struct {
		MainSearch *struct {
			Edges []struct {
				Node *struct {
					Entity *struct {
						ID     string     `json:"id"`
						Text   *textValue `json:"text"`
						Titles *struct {
							Total int `json:"total"`
						} `json:"titles"`
					} `json:"entity"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"mainSearch"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("SearchKeywords: %w", err)
	}

	var results []KeywordSearchResult
	if payload.MainSearch == nil {
		return nil, nil
	}
	for _, edge := range payload.MainSearch.Edges {
		if edge.Node == nil || edge.Node.Entity == nil {
			continue
		}
		entity := edge.Node.Entity
		if entity.ID == "" {
			continue
		}
		result := KeywordSearchResult{
			ID:   trimRefID(entity.ID),
			Text: entity.Text.text(),
		}
		if entity.Titles != nil {
			result.TitleCount = entity.Titles.Total
		}
		results = append(results, result)
	}
	return results, nil
}

// AdvancedSearchOptions narrows an advanced title search. Zero fields
// are left out of the query entirely.
type AdvancedSearchOptions struct {
	// Term matches against the title text.
	Term string
	// Kinds filters by title type id (movie, tvSeries, ...).
	Kinds []string
	// Genres filters by genre name.
	Genres []string
	// StartDate and EndDate bound the release date, ISO YYYY-MM-DD.
	// A malformed date fails the whole search closed (empty result).
	StartDate string
	EndDate   string
	// MinRating and MaxRating bound the aggregate user rating.
	MinRating float64
	MaxRating float64
	// SortBy and SortOrder override the configured defaults
	// (POPULARITY/ASC). Accepted SortBy values follow the upstream enum:
	// POPULARITY, USER_RATING, USER_RATING_COUNT, YEAR, TITLE_REGIONAL.
	SortBy    string
	SortOrder string
	// Limit caps the result count; 0 uses the configured title limit.
	Limit int
}

const advancedSearchQuery = `query AdvancedTitleSearch($constraints: AdvancedTitleSearchConstraints!, $sort: AdvancedTitleSearchSort!, $limit: Int!) {
  advancedTitleSearch(first: $limit, constraints: $constraints, sort: $sort) {
    edges {
      node {
        title {
          id
          titleText {
            text
          }
          releaseYear {
            year
          }
          titleType {
            id
          }
          ratingsSummary {
            aggregateRating
            voteCount
          }
          primaryImage {
            url
            width
            height
          }
          principalCredits(filter: {categories: ["cast"]}) {
            credits {
              name {
                nameText {
                  text
                }
              }
            }
          }
        }
      }
    }
  }
}`

// AdvancedSearch runs an advanced title search with the given
// constraints. An entirely empty options struct returns an empty list
// without touching the network, as does an invalid date range.
func (c *Client) AdvancedSearch(ctx context.Context, opts AdvancedSearchOptions) ([]TitleSearchResult, error) {
	constraints := map[string]any{}

	if term := strings.TrimSpace(opts.Term); term != "" {
		constraints["titleTextConstraint"] = map[string]any{"searchTerm": term}
	}
	if len(opts.Kinds) > 0 {
		constraints["titleTypeConstraint"] = map[string]any{"anyTitleTypeIds": opts.Kinds}
	}
	if len(opts.Genres) > 0 {
		constraints["genreConstraint"] = map[string]any{"allGenreIds": opts.Genres}
	}
	if opts.StartDate != "" || opts.EndDate != "" {
		start, end, ok := checkReleaseDates(opts.StartDate, opts.EndDate)
		if !ok {
			return nil, nil
		}
		constraints["releaseDateConstraint"] = map[string]any{
			"releaseDateRange": map[string]any{"start": start, "end": end},
		}
	}
	if opts.MinRating > 0 || opts.MaxRating > 0 {
		ratingRange := map[string]any{}
		if opts.MinRating > 0 {
			ratingRange["min"] = opts.MinRating
		}
		if opts.MaxRating > 0 {
			ratingRange["max"] = opts.MaxRating
		}
		constraints["userRatingsConstraint"] = map[string]any{"aggregateRatingRange": ratingRange}
	}
	if len(constraints) == 0 {
		return nil, nil
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = c.settings.SortBy
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = c.settings.SortOrder
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = c.settings.TitleSearchLimit
	}
	if limit <= 0 {
		limit = 10
	}

	data, err := c.queryIn(ctx, "search_cache", "AdvancedTitleSearch", advancedSearchQuery,
		map[string]any{
			"constraints": constraints,
			"sort":        map[string]any{"sortBy": sortBy, "sortOrder": sortOrder},
			"limit":       limit,
		})
	if err != nil {
		return nil, err
	}

	var payload struct {
		AdvancedTitleSearch *struct {
			Edges []struct {
				Node *struct {
					Title *struct {
						titleRef
						RatingsSummary *struct {
							AggregateRating float64 `json:"aggregateRating"`
							VoteCount       int     `json:"voteCount"`
						} `json:"ratingsSummary"`
						PrincipalCredits []struct {
							Credits []struct {
								Name *nameRef `json:"name"`
							} `json:"credits"`
						} `json:"principalCredits"`
					} `json:"title"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"advancedTitleSearch"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("AdvancedTitleSearch: %w", err)
	}

	var results []TitleSearchResult
	if payload.AdvancedTitleSearch == nil {
		return nil, nil
	}
	thumb := c.settings.PosterThumb
	for _, edge := range payload.AdvancedTitleSearch.Edges {
		if edge.Node == nil || edge.Node.Title == nil {
			continue
		}
		title := edge.Node.Title
		result := TitleSearchResult{
			ID:    title.refID(),
			Title: title.title(),
			Year:  title.year(),
			Kind:  title.kind(),
		}
		if result.ID == "" {
			continue
		}
		if title.RatingsSummary != nil {
			result.Rating = title.RatingsSummary.AggregateRating
			result.Votes = title.RatingsSummary.VoteCount
		}
		var names []string
		for _, group := range title.PrincipalCredits {
			for _, credit := range group.Credits {
				if name := credit.Name.name(); name != "" {
					names = append(names, name)
				}
			}
		}
		result.Cast = strings.Join(names, ", ")
		if img := title.image(); !img.IsZero() {
			result.Thumbnail = img.ThumbnailURL(thumb.Width, thumb.Height)
		}
		results = append(results, result)
	}
	return results, nil
}
