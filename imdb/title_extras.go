package imdb

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keyword is one plot keyword.
type Keyword struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Connection links this title to another (remake, spoof, sequel, ...).
type Connection struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Year  int    `json:"year" yaml:"year"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

// CompanyCredit is one company attached to the title.
type CompanyCredit struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Countries  []string `json:"countries,omitempty" yaml:"countries,omitempty"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Years      string   `json:"years,omitempty" yaml:"years,omitempty"`
}

// Goof is one production mistake.
type Goof struct {
	Text    string `json:"text" yaml:"text"`
	Spoiler bool   `json:"spoiler" yaml:"spoiler"`
}

// Quote is one memorable exchange, kept as its display lines.
type Quote struct {
	Lines []string `json:"lines" yaml:"lines"`
}

// Soundtrack is one credited piece of music.
type Soundtrack struct {
	Title    string   `json:"title" yaml:"title"`
	Comments []string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// ExternalSite is one off-site link.
type ExternalSite struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// ReleaseDate is one per-country release.
type ReleaseDate struct {
	Country    string   `json:"country" yaml:"country"`
	Date       Date     `json:"date" yaml:"date"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// AKA is one alternate title.
type AKA struct {
	Title      string   `json:"title" yaml:"title"`
	Country    string   `json:"country,omitempty" yaml:"country,omitempty"`
	Language   string   `json:"language,omitempty" yaml:"language,omitempty"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// TechnicalSpecs holds the technical specifications block.
type TechnicalSpecs struct {
	AspectRatios []string `json:"aspectRatios" yaml:"aspectRatios"`
	Colorations  []string `json:"colorations" yaml:"colorations"`
	SoundMixes   []string `json:"soundMixes" yaml:"soundMixes"`
	Processes    []string `json:"processes" yaml:"processes"`
}

// Video is one trailer or clip.
type Video struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	URL       string `json:"url" yaml:"url"`
	Runtime   int    `json:"runtime" yaml:"runtime"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// Recommendation is one "more like this" suggestion.
type Recommendation struct {
	ID        string  `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Year      int     `json:"year" yaml:"year"`
	Rating    float64 `json:"rating" yaml:"rating"`
	Thumbnail string  `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// Keywords returns every plot keyword, empty when unavailable.
func (t *Title) Keywords(ctx context.Context) ([]Keyword, error) {
	if t.fetched["keywords"] {
		return t.keywords, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleKeywords", "keywords",
		"          keyword {\n            id\n            text {\n              text\n            }\n          }", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Keyword *struct {
				ID   string     `json:"id"`
				Text *textValue `json:"text"`
			} `json:"keyword"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Keyword == nil {
			continue
		}
		t.keywords = append(t.keywords, Keyword{
			ID:   trimRefID(node.Keyword.ID),
			Text: node.Keyword.Text.text(),
		})
	}

	t.fetched["keywords"] = true
	return t.keywords, nil
}

const connectionNodeFields = `          category {
            id
          }
          associatedTitle {
            id
            titleText {
              text
            }
            releaseYear {
              year
            }
          }
          text {
            plainText
          }`

// Connections returns title connections grouped by camelCase category
// key (remakeOf, followedBy, ...), empty when unavailable.
func (t *Title) Connections(ctx context.Context) (map[string][]Connection, error) {
	if t.fetched["connections"] {
		return t.connections, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleConnections", "connections",
		connectionNodeFields, "")
	if err != nil {
		return nil, err
	}

	connections := make(map[string][]Connection)
	for _, raw := range nodes {
		var node struct {
			Category        *idValue        `json:"category"`
			AssociatedTitle *titleRef       `json:"associatedTitle"`
			Text            *plainTextValue `json:"text"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Category == nil || node.AssociatedTitle == nil {
			continue
		}
		key, ok := remapCategory(connectionCategories, "connections", node.Category.ID)
		if !ok {
			continue
		}
		connections[key] = append(connections[key], Connection{
			ID:    node.AssociatedTitle.refID(),
			Title: node.AssociatedTitle.title(),
			Year:  node.AssociatedTitle.year(),
			Text:  node.Text.text(),
		})
	}

	t.connections = connections
	t.fetched["connections"] = true
	return t.connections, nil
}

const companyNodeFields = `          category {
            id
          }
          company {
            id
          }
          displayableProperty {
            value {
              plainText
            }
          }
          countries {
            text
          }
          attributes {
            text
          }
          yearsInvolved {
            year
          }`

// CompanyCredits returns company credits grouped by camelCase category
// key (production, distribution, specialEffects, ...), empty when
// unavailable.
func (t *Title) CompanyCredits(ctx context.Context) (map[string][]CompanyCredit, error) {
	if t.fetched["companies"] {
		return t.companies, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleCompanyCredits", "companyCredits",
		companyNodeFields, "")
	if err != nil {
		return nil, err
	}

	companies := make(map[string][]CompanyCredit)
	for _, raw := range nodes {
		var node struct {
			Category            *idValue `json:"category"`
			Company             *idValue `json:"company"`
			DisplayableProperty *struct {
				Value *plainTextValue `json:"value"`
			} `json:"displayableProperty"`
			Countries     []textValue `json:"countries"`
			Attributes    []textValue `json:"attributes"`
			YearsInvolved *struct {
				Year string `json:"year"`
			} `json:"yearsInvolved"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Category == nil {
			continue
		}
		key, ok := remapCategory(companyCategories, "companyCredits", node.Category.ID)
		if !ok {
			continue
		}

		credit := CompanyCredit{ID: trimRefID(node.Company.id())}
		if node.DisplayableProperty != nil {
			credit.Name = node.DisplayableProperty.Value.text()
		}
		for _, country := range node.Countries {
			if country.Text != "" {
				credit.Countries = append(credit.Countries, country.Text)
			}
		}
		for _, attr := range node.Attributes {
			if attr.Text != "" {
				credit.Attributes = append(credit.Attributes, attr.Text)
			}
		}
		if node.YearsInvolved != nil {
			credit.Years = node.YearsInvolved.Year
		}
		companies[key] = append(companies[key], credit)
	}

	t.companies = companies
	t.fetched["companies"] = true
	return t.companies, nil
}

const goofNodeFields = `          category {
            id
          }
          displayableArticle {
            body {
              plainText
            }
          }
          isSpoiler`

// Goofs returns production mistakes grouped by camelCase category key
// (continuity, factualError, ...), empty when unavailable.
func (t *Title) Goofs(ctx context.Context) (map[string][]Goof, error) {
	if t.fetched["goofs"] {
		return t.goofs, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleGoofs", "goofs",
		goofNodeFields, "")
	if err != nil {
		return nil, err
	}

	goofs := make(map[string][]Goof)
	for _, raw := range nodes {
		var node struct {
			Category           *idValue `json:"category"`
			DisplayableArticle *struct {
				Body *plainTextValue `json:"body"`
			} `json:"displayableArticle"`
			IsSpoiler bool `json:"isSpoiler"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Category == nil || node.DisplayableArticle == nil {
			continue
		}
		key, ok := remapCategory(goofCategories, "goofs", node.Category.ID)
		if !ok {
			continue
		}
		text := node.DisplayableArticle.Body.text()
		if text == "" {
			continue
		}
		goofs[key] = append(goofs[key], Goof{Text: text, Spoiler: node.IsSpoiler})
	}

	t.goofs = goofs
	t.fetched["goofs"] = true
	return t.goofs, nil
}

// Trivia returns trivia entries in server order, empty when unavailable.
func (t *Title) Trivia(ctx context.Context) ([]string, error) {
	if t.fetched["trivia"] {
		return t.trivia, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleTrivia", "trivia",
		"          displayableArticle {\n            body {\n              plainText\n            }\n          }", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			DisplayableArticle *struct {
				Body *plainTextValue `json:"body"`
			} `json:"displayableArticle"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.DisplayableArticle == nil {
			continue
		}
		if text := node.DisplayableArticle.Body.text(); text != "" {
			t.trivia = append(t.trivia, text)
		}
	}

	t.fetched["trivia"] = true
	return t.trivia, nil
}

const quoteNodeFields = `          lines {
            characters {
              character
            }
            text
          }`

// Quotes returns memorable quotes as display lines ("Character: line"),
// empty when unavailable.
func (t *Title) Quotes(ctx context.Context) ([]Quote, error) {
	if t.fetched["quotes"] {
		return t.quotes, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleQuotes", "quotes",
		quoteNodeFields, "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Lines []struct {
				Characters []struct {
					Character string `json:"character"`
				} `json:"characters"`
				Text string `json:"text"`
			} `json:"lines"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		var quote Quote
		for _, line := range node.Lines {
			text := line.Text
			if len(line.Characters) > 0 && line.Characters[0].Character != "" {
				text = line.Characters[0].Character + ": " + text
			}
			if text != "" {
				quote.Lines = append(quote.Lines, text)
			}
		}
		if len(quote.Lines) > 0 {
			t.quotes = append(t.quotes, quote)
		}
	}

	t.fetched["quotes"] = true
	return t.quotes, nil
}

// Soundtracks returns the credited music, empty when unavailable.
func (t *Title) Soundtracks(ctx context.Context) ([]Soundtrack, error) {
	if t.fetched["soundtracks"] {
		return t.soundtracks, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleSoundtracks", "soundtrack",
		"          text\n          comments {\n            plainText\n          }", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Text     string           `json:"text"`
			Comments []plainTextValue `json:"comments"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Text == "" {
			continue
		}
		track := Soundtrack{Title: node.Text}
		for _, c := range node.Comments {
			if c.PlainText != "" {
				track.Comments = append(track.Comments, c.PlainText)
			}
		}
		t.soundtracks = append(t.soundtracks, track)
	}

	t.fetched["soundtracks"] = true
	return t.soundtracks, nil
}

const externalSiteNodeFields = `          category {
            id
          }
          label
          url`

// ExternalSites returns off-site links grouped by camelCase category
// key (official, video, photo, sound, misc), empty when unavailable.
func (t *Title) ExternalSites(ctx context.Context) (map[string][]ExternalSite, error) {
	if t.fetched["sites"] {
		return t.sites, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleExternalSites", "externalLinks",
		externalSiteNodeFields, "")
	if err != nil {
		return nil, err
	}

	sites := make(map[string][]ExternalSite)
	for _, raw := range nodes {
		var node struct {
			Category *idValue `json:"category"`
			Label    string   `json:"label"`
			URL      string   `json:"url"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Category == nil || node.URL == "" {
			continue
		}
		key, ok := remapCategory(externalSiteCategories, "externalLinks", node.Category.ID)
		if !ok {
			continue
		}
		sites[key] = append(sites[key], ExternalSite{Label: node.Label, URL: node.URL})
	}

	t.sites = sites
	t.fetched["sites"] = true
	return t.sites, nil
}

const releaseDateNodeFields = `          country {
            text
          }
          day
          month
          year
          attributes {
            text
          }`

// ReleaseDates returns per-country release dates in server order,
// empty when unavailable.
func (t *Title) ReleaseDates(ctx context.Context) ([]ReleaseDate, error) {
	if t.fetched["releases"] {
		return t.releases, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleReleaseDates", "releaseDates",
		releaseDateNodeFields, "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Country    *textValue  `json:"country"`
			Day        int         `json:"day"`
			Month      int         `json:"month"`
			Year       int         `json:"year"`
			Attributes []textValue `json:"attributes"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		release := ReleaseDate{
			Country: node.Country.text(),
			Date:    decomposeDate(node.Day, node.Month, node.Year),
		}
		for _, attr := range node.Attributes {
			if attr.Text != "" {
				release.Attributes = append(release.Attributes, attr.Text)
			}
		}
		t.releases = append(t.releases, release)
	}

	t.fetched["releases"] = true
	return t.releases, nil
}

const akaNodeFields = `          text
          country {
            text
          }
          language {
            text
          }
          attributes {
            text
          }`

// AKAs returns alternate titles in server order, empty when unavailable.
func (t *Title) AKAs(ctx context.Context) ([]AKA, error) {
	if t.fetched["akas"] {
		return t.akas, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleAKAs", "akas",
		akaNodeFields, "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Text       string      `json:"text"`
			Country    *textValue  `json:"country"`
			Language   *textValue  `json:"language"`
			Attributes []textValue `json:"attributes"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Text == "" {
			continue
		}
		aka := AKA{
			Title:    node.Text,
			Country:  node.Country.text(),
			Language: node.Language.text(),
		}
		for _, attr := range node.Attributes {
			if attr.Text != "" {
				aka.Attributes = append(aka.Attributes, attr.Text)
			}
		}
		t.akas = append(t.akas, aka)
	}

	t.fetched["akas"] = true
	return t.akas, nil
}

const titleTechSpecsQuery = `query TitleTechSpecs($id: ID!) {
  title(id: $id) {
    technicalSpecifications {
      aspectRatios {
        items {
          aspectRatio
        }
      }
      colorations {
        items {
          text
        }
      }
      soundMixes {
        items {
          text
        }
      }
      processes {
        items {
          process
        }
      }
    }
  }
}`

// TechnicalSpecs returns the technical specifications block; all slices
// are empty when unavailable.
func (t *Title) TechnicalSpecs(ctx context.Context) (TechnicalSpecs, error) {
	if t.fetched["specs"] {
		return t.specs, nil
	}

	data, err := t.client.query(ctx, "TitleTechSpecs", titleTechSpecsQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return TechnicalSpecs{}, err
	}

	var payload struct {
		Title *struct {
			TechnicalSpecifications *struct {
				AspectRatios *struct {
					Items []struct {
						AspectRatio string `json:"aspectRatio"`
					} `json:"items"`
				} `json:"aspectRatios"`
				Colorations *struct {
					Items []textValue `json:"items"`
				} `json:"colorations"`
				SoundMixes *struct {
					Items []textValue `json:"items"`
				} `json:"soundMixes"`
				Processes *struct {
					Items []struct {
						Process string `json:"process"`
					} `json:"items"`
				} `json:"processes"`
			} `json:"technicalSpecifications"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return TechnicalSpecs{}, fmt.Errorf("TitleTechSpecs: %w", err)
	}

	if payload.Title != nil && payload.Title.TechnicalSpecifications != nil {
		ts := payload.Title.TechnicalSpecifications
		if ts.AspectRatios != nil {
			for _, item := range ts.AspectRatios.Items {
				if item.AspectRatio != "" {
					t.specs.AspectRatios = append(t.specs.AspectRatios, item.AspectRatio)
				}
			}
		}
		if ts.Colorations != nil {
			for _, item := range ts.Colorations.Items {
				if item.Text != "" {
					t.specs.Colorations = append(t.specs.Colorations, item.Text)
				}
			}
		}
		if ts.SoundMixes != nil {
			for _, item := range ts.SoundMixes.Items {
				if item.Text != "" {
					t.specs.SoundMixes = append(t.specs.SoundMixes, item.Text)
				}
			}
		}
		if ts.Processes != nil {
			for _, item := range ts.Processes.Items {
				if item.Process != "" {
					t.specs.Processes = append(t.specs.Processes, item.Process)
				}
			}
		}
	}

	t.fetched["specs"] = true
	return t.specs, nil
}

// Colors returns the coloration names (Color, Black and White, ...).
func (t *Title) Colors(ctx context.Context) ([]string, error) {
	specs, err := t.TechnicalSpecs(ctx)
	if err != nil {
		return nil, err
	}
	return specs.Colorations, nil
}

// AspectRatios returns the aspect ratio strings ("2.39 : 1", ...).
func (t *Title) AspectRatios(ctx context.Context) ([]string, error) {
	specs, err := t.TechnicalSpecs(ctx)
	if err != nil {
		return nil, err
	}
	return specs.AspectRatios, nil
}

// Sounds returns the sound mix names (Dolby Digital, ...).
func (t *Title) Sounds(ctx context.Context) ([]string, error) {
	specs, err := t.TechnicalSpecs(ctx)
	if err != nil {
		return nil, err
	}
	return specs.SoundMixes, nil
}

const titleTrailersQuery = `query TitleTrailers($id: ID!) {
  title(id: $id) {
    primaryVideos(first: 10) {
      edges {
        node {
          id
          name {
            value
          }
          runtime {
            value
          }
          thumbnail {
            url
            width
            height
          }
        }
      }
    }
  }
}`

// Trailers returns the primary videos (trailers and clips), empty when
// unavailable. URL points at the IMDb video player.
func (t *Title) Trailers(ctx context.Context) ([]Video, error) {
	if t.fetched["trailers"] {
		return t.trailers, nil
	}

	data, err := t.client.query(ctx, "TitleTrailers", titleTrailersQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title *struct {
			PrimaryVideos *struct {
				Edges []struct {
					Node *struct {
						ID   string `json:"id"`
						Name *struct {
							Value string `json:"value"`
						} `json:"name"`
						Runtime *struct {
							Value int `json:"value"`
						} `json:"runtime"`
						Thumbnail *imageValue `json:"thumbnail"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"primaryVideos"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("TitleTrailers: %w", err)
	}

	box := t.client.settings.EpisodeThumb
	if payload.Title != nil && payload.Title.PrimaryVideos != nil {
		for _, edge := range payload.Title.PrimaryVideos.Edges {
			if edge.Node == nil {
				continue
			}
			video := Video{
				ID:  trimRefID(edge.Node.ID),
				URL: "https://www.imdb.com/video/" + edge.Node.ID,
			}
			if edge.Node.Name != nil {
				video.Title = edge.Node.Name.Value
			}
			if edge.Node.Runtime != nil {
				video.Runtime = edge.Node.Runtime.Value
			}
			// Video stills share the episode still aspect.
			if img := edge.Node.Thumbnail.image(); !img.IsZero() {
				video.Thumbnail = img.ThumbnailURL(box.Width, box.Height)
			}
			t.trailers = append(t.trailers, video)
		}
	}

	t.fetched["trailers"] = true
	return t.trailers, nil
}

const titleRecommendationsQuery = `query TitleRecommendations($id: ID!) {
  title(id: $id) {
    moreLikeThisTitles(first: 12) {
      edges {
        node {
          id
          titleText {
            text
          }
          releaseYear {
            year
          }
          ratingsSummary {
            aggregateRating
          }
          primaryImage {
            url
            width
            height
          }
        }
      }
    }
  }
}`

// Recommendations returns the "more like this" titles, empty when
// unavailable. Thumbnails use the configured recommendation box.
func (t *Title) Recommendations(ctx context.Context) ([]Recommendation, error) {
	if t.fetched["recommended"] {
		return t.recommended, nil
	}

	data, err := t.client.query(ctx, "TitleRecommendations", titleRecommendationsQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title *struct {
			MoreLikeThisTitles *struct {
				Edges []struct {
					Node *struct {
						titleRef
						RatingsSummary *struct {
							AggregateRating float64 `json:"aggregateRating"`
						} `json:"ratingsSummary"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"moreLikeThisTitles"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("TitleRecommendations: %w", err)
	}

	thumb := t.client.settings.RecommThumb
	if payload.Title != nil && payload.Title.MoreLikeThisTitles != nil {
		for _, edge := range payload.Title.MoreLikeThisTitles.Edges {
			if edge.Node == nil {
				continue
			}
			rec := Recommendation{
				ID:    edge.Node.refID(),
				Title: edge.Node.title(),
				Year:  edge.Node.year(),
			}
			if edge.Node.RatingsSummary != nil {
				rec.Rating = edge.Node.RatingsSummary.AggregateRating
			}
			if img := edge.Node.image(); !img.IsZero() {
				rec.Thumbnail = img.ThumbnailURL(thumb.Width, thumb.Height)
			}
			t.recommended = append(t.recommended, rec)
		}
	}

	t.fetched["recommended"] = true
	return t.recommended, nil
}
