package imdb

import (
	"context"
	"encoding/json"
)

// FilmographyCredit is one title in a person's filmography.
type FilmographyCredit struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Year       int      `json:"year" yaml:"year"`
	Kind       string   `json:"kind" yaml:"kind"`
	Characters []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Job        string   `json:"job,omitempty" yaml:"job,omitempty"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

const filmographyNodeFields = `          title {
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
          }
          category {
            id
          }
          ... on Cast {
            characters {
              name
            }
            attributes {
              text
            }
          }
          ... on Crew {
            jobs {
              text
            }
          }`

// Credits returns the full filmography grouped by camelCase category
// key (actor, director, producer, ...), empty when unavailable. Within
// a category, server order (most recent first) is kept.
func (n *Name) Credits(ctx context.Context) (map[string][]FilmographyCredit, error) {
	if n.fetched["credits"] {
		return n.credits, nil
	}

	nodes, err := n.client.fetchAll(ctx, "name", n.prefixedID(), "NameFilmography", "credits",
		filmographyNodeFields, "")
	if err != nil {
		return nil, err
	}

	credits := make(map[string][]FilmographyCredit)
	for _, raw := range nodes {
		var node struct {
			Title      *titleRef `json:"title"`
			Category   *idValue  `json:"category"`
			Characters []struct {
				Name string `json:"name"`
			} `json:"characters"`
			Attributes []textValue `json:"attributes"`
			Jobs       []struct {
				Text string `json:"text"`
			} `json:"jobs"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Title == nil || node.Category == nil {
			continue
		}
		key, ok := remapCategory(creditCategories, "credits", node.Category.ID)
		if !ok {
			continue
		}

		credit := FilmographyCredit{
			ID:    node.Title.refID(),
			Title: node.Title.title(),
			Year:  node.Title.year(),
			Kind:  node.Title.kind(),
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
		if len(node.Jobs) > 0 {
			credit.Job = node.Jobs[0].Text
		}
		credits[key] = append(credits[key], credit)
	}

	n.credits = credits
	n.fetched["credits"] = true
	return n.credits, nil
}
