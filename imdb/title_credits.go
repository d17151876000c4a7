package imdb

import (
	"context"
	"encoding/json"
	"fmt"
)

// CastCredit is one billed cast member in billing order.
type CastCredit struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Characters []string `json:"characters" yaml:"characters"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Image      Image    `json:"image,omitempty" yaml:"image,omitempty"`
	Thumbnail  string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// CrewCredit is one non-cast credit.
type CrewCredit struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Job        string   `json:"job,omitempty" yaml:"job,omitempty"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Principal is one top-billed credit from the title page header.
type Principal struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

const castNodeFields = `          name {
            id
            nameText {
              text
            }
            primaryImage {
              url
              width
              height
            }
          }
          ... on Cast {
            characters {
              name
            }
            attributes {
              text
            }
          }`

// Cast returns the full billed cast in server (billing) order; empty
// when unavailable. Thumbnails use the configured cast box.
func (t *Title) Cast(ctx context.Context) ([]CastCredit, error) {
	if t.fetched["cast"] {
		return t.cast, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleCast", "credits",
		castNodeFields, `, filter: {categories: ["cast"]}`)
	if err != nil {
		return nil, err
	}

	thumb := t.client.settings.CastThumb
	for _, raw := range nodes {
		var node struct {
			Name       *nameRef `json:"name"`
			Characters []struct {
				Name string `json:"name"`
			} `json:"characters"`
			Attributes []textValue `json:"attributes"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Name == nil {
			continue
		}

		credit := CastCredit{
			ID:    node.Name.refID(),
			Name:  node.Name.name(),
			Image: node.Name.image(),
		}
		for _, ch := range node.Characters {
			if ch.Name != "" {
				credit.Characters = append(credit.Characters, ch.Name)
			}
		}
		for _, attr := range node.Attributes {
			if attr.Text != "" {
				credit.Attributes = append(credit.Attributes, attr.Text)
			}
		}
		if !credit.Image.IsZero() {
			credit.Thumbnail = credit.Image.ThumbnailURL(thumb.Width, thumb.Height)
		}
		t.cast = append(t.cast, credit)
	}

	t.fetched["cast"] = true
	return t.cast, nil
}

const crewNodeFields = `          name {
            id
            nameText {
              text
            }
          }
          category {
            id
          }
          ... on Crew {
            jobs {
              text
            }
            attributes {
              text
            }
          }`

// castCategoryIDs are the credit categories Cast covers; Crew skips them.
var castCategoryIDs = map[string]bool{
	"cast":            true,
	"actor":           true,
	"actress":         true,
	"self":            true,
	"archive_footage": true,
	"archive_sound":   true,
}

// Crew returns every non-cast credit grouped by camelCase category key
// (director, writer, specialEffects, ...). Entries with a category id
// missing from the credit table are dropped.
func (t *Title) Crew(ctx context.Context) (map[string][]CrewCredit, error) {
	if t.fetched["crew"] {
		return t.crew, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleCrew", "credits",
		crewNodeFields, "")
	if err != nil {
		return nil, err
	}

	crew := make(map[string][]CrewCredit)
	for _, raw := range nodes {
		var node struct {
			Name     *nameRef `json:"name"`
			Category *idValue `json:"category"`
			Jobs     []struct {
				Text string `json:"text"`
			} `json:"jobs"`
			Attributes []textValue `json:"attributes"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Name == nil || node.Category == nil {
			continue
		}
		if castCategoryIDs[node.Category.ID] {
			continue
		}

		key, ok := remapCategory(creditCategories, "credits", node.Category.ID)
		if !ok {
			continue
		}

		credit := CrewCredit{
			ID:   node.Name.refID(),
			Name: node.Name.name(),
		}
		if len(node.Jobs) > 0 {
			credit.Job = node.Jobs[0].Text
		}
		for _, attr := range node.Attributes {
			if attr.Text != "" {
				credit.Attributes = append(credit.Attributes, attr.Text)
			}
		}
		crew[key] = append(crew[key], credit)
	}

	t.crew = crew
	t.fetched["crew"] = true
	return t.crew, nil
}

// Directors is a convenience view over Crew.
func (t *Title) Directors(ctx context.Context) ([]CrewCredit, error) {
	return t.crewCategory(ctx, "director")
}

// Writers is a convenience view over Crew.
func (t *Title) Writers(ctx context.Context) ([]CrewCredit, error) {
	return t.crewCategory(ctx, "writer")
}

// Producers is a convenience view over Crew.
func (t *Title) Producers(ctx context.Context) ([]CrewCredit, error) {
	return t.crewCategory(ctx, "producer")
}

// Composers is a convenience view over Crew.
func (t *Title) Composers(ctx context.Context) ([]CrewCredit, error) {
	return t.crewCategory(ctx, "composer")
}

func (t *Title) crewCategory(ctx context.Context, key string) ([]CrewCredit, error) {
	crew, err := t.Crew(ctx)
	if err != nil {
		return nil, err
	}
	return crew[key], nil
}

const titlePrincipalsQuery = `query TitlePrincipals($id: ID!) {
  title(id: $id) {
    principalCredits {
      category {
        id
      }
      credits {
        name {
          id
          nameText {
            text
          }
        }
      }
    }
  }
}`

// PrincipalCredits returns the top-billed credits grouped by camelCase
// category key, as shown on the title page header.
func (t *Title) PrincipalCredits(ctx context.Context) (map[string][]Principal, error) {
	if t.fetched["principals"] {
		return t.principals, nil
	}

	data, err := t.client.query(ctx, "TitlePrincipals", titlePrincipalsQuery, map[string]any{"id": t.prefixedID()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title *struct {
			PrincipalCredits []struct {
				Category *idValue `json:"category"`
				Credits  []struct {
					Name *nameRef `json:"name"`
				} `json:"credits"`
			} `json:"principalCredits"`
		} `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("TitlePrincipals: %w", err)
	}

	principals := make(map[string][]Principal)
	if payload.Title != nil {
		for _, group := range payload.Title.PrincipalCredits {
			if group.Category == nil {
				continue
			}
			key, ok := remapCategory(creditCategories, "credits", group.Category.ID)
			if !ok {
				continue
			}
			for _, credit := range group.Credits {
				if credit.Name == nil {
					continue
				}
				principals[key] = append(principals[key], Principal{
					ID:   credit.Name.refID(),
					Name: credit.Name.name(),
				})
			}
		}
	}

	t.principals = principals
	t.fetched["principals"] = true
	return t.principals, nil
}
