package imdb

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
)

// Title is one movie, show or episode. Every accessor fetches lazily and
// memoizes on the instance, so repeated calls never touch the network
// again for the lifetime of the Title. There is no invalidation;
// construct a new Title to observe fresh upstream data.
type Title struct {
	client *Client
	id     string

	fetched map[string]bool

	main      titleMain
	genres    []string
	languages []Locale
	countries []Locale
	taglines  []string
	plots     []string

	cast       []CastCredit
	principals map[string][]Principal
	crew       map[string][]CrewCredit

	awards   map[string][]Award
	seasons  []int
	episodes map[int][]Episode

	keywords    []Keyword
	connections map[string][]Connection
	companies   map[string][]CompanyCredit
	goofs       map[string][]Goof
	trivia      []string
	quotes      []Quote
	soundtracks []Soundtrack
	sites       map[string][]ExternalSite
	releases    []ReleaseDate
	akas        []AKA
	specs       TechnicalSpecs
	trailers    []Video
	recommended []Recommendation
}

// Locale is a language or country reference.
type Locale struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// titleMain bundles the scalar fields fetched by the first accessor hit.
type titleMain struct {
	Title          string
	OriginalTitle  string
	Year           int
	EndYear        int
	Kind           string
	RuntimeMinutes int
	Rating         float64
	Votes          int
	Metacritic     int
	Plot           string
	Poster         Image
}

// NewTitle creates a Title for the given identifier ("tt0066921" or a
// bare numeric form). The identifier is canonicalized once and immutable
// afterwards; nothing is fetched until an accessor is called.
func NewTitle(c *Client, id string) (*Title, error) {
	canonical, err := canonicalID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid title id: %w", err)
	}
	return &Title{
		client:  c,
		id:      canonical,
		fetched: make(map[string]bool),
	}, nil
}

// ID returns the canonical numeric identifier (leading zeros kept).
func (t *Title) ID() string {
	return t.id
}

func (t *Title) prefixedID() string {
	return "tt" + t.id
}

const titleMainQuery = `query TitleMain($id: ID!) {
  title(id: $id) {
    titleText {
      text
    }
    originalTitleText {
      text
    }
    releaseYear {
      year
      endYear
    }
    titleType {
      id
    }
    runtime {
      seconds
    }
    ratingsSummary {
      aggregateRating
      voteCount
    }
    metacritic {
      metascore {
        score
      }
    }
    plot {
      plotText {
        plainText
      }
    }
    primaryImage {
      url
      width
      height
    }
  }
}`

func (t *Title) ensureMain(ctx context.Context) error {
	if t.fetched["main"] {
		return nil
	}

	data, err := t.client.query(ctx, "TitleMain", titleMainQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return err
	}

	var payload struct {
		Title *struct {
			TitleText         *textValue `json:"titleText"`
			OriginalTitleText *textValue `json:"originalTitleText"`
			ReleaseYear       *struct {
				Year    int `json:"year"`
				EndYear int `json:"endYear"`
			} `json:"releaseYear"`
			TitleType *struct {
				ID string `json:"id"`
			} `json:"titleType"`
			Runtime *struct {
				Seconds int `json:"seconds"`
			} `json:"runtime"`
			RatingsSummary *struct {
				AggregateRating float64 `json:"aggregateRating"`
				VoteCount       int     `json:"voteCount"`
			} `json:"ratingsSummary"`
			Metacritic *struct {
				Metascore *struct {
					Score int `json:"score"`
				} `json:"metascore"`
			} `json:"metacritic"`
			Plot *struct {
				PlotText *plainTextValue `json:"plotText"`
			} `json:"plot"`
			PrimaryImage *imageValue `json:"primaryImage"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("TitleMain: %w", err)
	}

	// Upstream unavailable or unknown id: memoize the zero bundle so
	// every dependent accessor returns its documented default.
	if ti := payload.Title; ti != nil {
		t.main.Title = ti.TitleText.text()
		t.main.OriginalTitle = ti.OriginalTitleText.text()
		if ti.ReleaseYear != nil {
			t.main.Year = ti.ReleaseYear.Year
			t.main.EndYear = ti.ReleaseYear.EndYear
		}
		if ti.TitleType != nil {
			t.main.Kind = ti.TitleType.ID
		}
		if ti.Runtime != nil {
			t.main.RuntimeMinutes = int(math.Round(float64(ti.Runtime.Seconds) / 60))
		}
		if ti.RatingsSummary != nil {
			t.main.Rating = ti.RatingsSummary.AggregateRating
			t.main.Votes = ti.RatingsSummary.VoteCount
		}
		if ti.Metacritic != nil && ti.Metacritic.Metascore != nil {
			t.main.Metacritic = ti.Metacritic.Metascore.Score
		}
		if ti.Plot != nil {
			t.main.Plot = ti.Plot.PlotText.text()
		}
		t.main.Poster = ti.PrimaryImage.image()
	}

	t.fetched["main"] = true
	return nil
}

// Title returns the localized display title, or "" when unavailable.
func (t *Title) Title(ctx context.Context) (string, error) {
	if err := t.ensureMain(ctx); err != nil {
		return "", err
	}
	return t.main.Title, nil
}

// OriginalTitle returns the original-language title, or "".
func (t *Title) OriginalTitle(ctx context.Context) (string, error) {
	if err := t.ensureMain(ctx); err != nil {
		return "", err
	}
	return t.main.OriginalTitle, nil
}

// Year returns the release year, or 0.
func (t *Title) Year(ctx context.Context) (int, error) {
	if err := t.ensureMain(ctx); err != nil {
		return 0, err
	}
	return t.main.Year, nil
}

// EndYear returns the final year of a series run, or 0.
func (t *Title) EndYear(ctx context.Context) (int, error) {
	if err := t.ensureMain(ctx); err != nil {
		return 0, err
	}
	return t.main.EndYear, nil
}

// Kind returns the title type id (movie, tvSeries, tvEpisode, ...), or "".
func (t *Title) Kind(ctx context.Context) (string, error) {
	if err := t.ensureMain(ctx); err != nil {
		return "", err
	}
	return t.main.Kind, nil
}

// Runtime returns the runtime in minutes, or 0.
func (t *Title) Runtime(ctx context.Context) (int, error) {
	if err := t.ensureMain(ctx); err != nil {
		return 0, err
	}
	return t.main.RuntimeMinutes, nil
}

// Rating returns the aggregate user rating, or 0.
func (t *Title) Rating(ctx context.Context) (float64, error) {
	if err := t.ensureMain(ctx); err != nil {
		return 0, err
	}
	return t.main.Rating, nil
}

// Votes returns the rating vote count, or 0.
func (t *Title) Votes(ctx context.Context) (int, error) {
	if err := t.ensureMain(ctx); err != nil {
		return 0, err
	}
	return t.main.Votes, nil
}

// Metacritic returns the metascore, or 0 when the title has none.
func (t *Title) Metacritic(ctx context.Context) (int, error) {
	if err := t.ensureMain(ctx); err != nil {
		return 0, err
	}
	return t.main.Metacritic, nil
}

// Plot returns the primary plot text, or "".
func (t *Title) Plot(ctx context.Context) (string, error) {
	if err := t.ensureMain(ctx); err != nil {
		return "", err
	}
	return t.main.Plot, nil
}

// Poster returns the primary image, zero when the title has none.
func (t *Title) Poster(ctx context.Context) (Image, error) {
	if err := t.ensureMain(ctx); err != nil {
		return Image{}, err
	}
	return t.main.Poster, nil
}

// PosterThumbnailURL returns the poster thumbnail in the configured
// poster box, or "" when the title has no poster.
func (t *Title) PosterThumbnailURL(ctx context.Context) (string, error) {
	poster, err := t.Poster(ctx)
	if err != nil || poster.IsZero() {
		return "", err
	}
	thumb := t.client.settings.PosterThumb
	return poster.ThumbnailURL(thumb.Width, thumb.Height), nil
}

const titleGenresQuery = `query TitleGenres($id: ID!) {
  title(id: $id) {
    genres {
      genres {
        text
      }
    }
  }
}`

// Genres returns the genre names, empty when unavailable.
func (t *Title) Genres(ctx context.Context) ([]string, error) {
	if t.fetched["genres"] {
		return t.genres, nil
	}

	data, err := t.client.query(ctx, "TitleGenres", titleGenresQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title *struct {
			Genres *struct {
				Genres []textValue `json:"genres"`
			} `json:"genres"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("TitleGenres: %w", err)
	}

	if payload.Title != nil && payload.Title.Genres != nil {
		for _, g := range payload.Title.Genres.Genres {
			if g.Text != "" {
				t.genres = append(t.genres, g.Text)
			}
		}
	}

	t.fetched["genres"] = true
	return t.genres, nil
}

const titleLocalesQuery = `query TitleLocales($id: ID!) {
  title(id: $id) {
    spokenLanguages {
      spokenLanguages {
        id
        text
      }
    }
    countriesOfOrigin {
      countries {
        id
        text
      }
    }
  }
}`

func (t *Title) ensureLocales(ctx context.Context) error {
	if t.fetched["locales"] {
		return nil
	}

	data, err := t.client.query(ctx, "TitleLocales", titleLocalesQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return err
	}

	var payload struct {
		Title *struct {
			SpokenLanguages *struct {
				SpokenLanguages []idTextValue `json:"spokenLanguages"`
			} `json:"spokenLanguages"`
			CountriesOfOrigin *struct {
				Countries []idTextValue `json:"countries"`
			} `json:"countriesOfOrigin"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("TitleLocales: %w", err)
	}

	if ti := payload.Title; ti != nil {
		if ti.SpokenLanguages != nil {
			for _, l := range ti.SpokenLanguages.SpokenLanguages {
				t.languages = append(t.languages, Locale{Code: l.ID, Name: l.Text})
			}
		}
		if ti.CountriesOfOrigin != nil {
			for _, c := range ti.CountriesOfOrigin.Countries {
				t.countries = append(t.countries, Locale{Code: c.ID, Name: c.Text})
			}
		}
	}

	t.fetched["locales"] = true
	return nil
}

// Languages returns the spoken languages, empty when unavailable.
func (t *Title) Languages(ctx context.Context) ([]Locale, error) {
	if err := t.ensureLocales(ctx); err != nil {
		return nil, err
	}
	return t.languages, nil
}

// Countries returns the countries of origin, empty when unavailable.
func (t *Title) Countries(ctx context.Context) ([]Locale, error) {
	if err := t.ensureLocales(ctx); err != nil {
		return nil, err
	}
	return t.countries, nil
}

// Taglines returns every tagline, empty when unavailable.
func (t *Title) Taglines(ctx context.Context) ([]string, error) {
	if t.fetched["taglines"] {
		return t.taglines, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleTaglines", "taglines", "          text", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node textValue
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Text != "" {
			t.taglines = append(t.taglines, node.Text)
		}
	}

	t.fetched["taglines"] = true
	return t.taglines, nil
}

// Plots returns every plot summary, empty when unavailable.
func (t *Title) Plots(ctx context.Context) ([]string, error) {
	if t.fetched["plots"] {
		return t.plots, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitlePlots", "plots",
		"          plotText {\n            plainText\n          }", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			PlotText *plainTextValue `json:"plotText"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if text := node.PlotText.text(); text != "" {
			t.plots = append(t.plots, text)
		}
	}

	t.fetched["plots"] = true
	return t.plots, nil
}
