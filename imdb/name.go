package imdb

import (
	"context"
	"encoding/json"
	"fmt"
)

// Name is one person. Accessors fetch lazily and memoize on the
// instance, same contract as Title.
type Name struct {
	client *Client
	id     string

	fetched map[string]bool

	main       nameMain
	spouses    []Spouse
	children   []string
	trademarks []string
	quotes     []string
	trivia     []string
	salaries   []Salary
	akas       []string
	knownFor   []KnownForTitle
	credits    map[string][]FilmographyCredit
}

// nameMain bundles the scalar fields fetched together on first access.
type nameMain struct {
	FullName   string
	Bio        string
	HeightCm   int
	Portrait   Image
	BirthDate  Date
	BirthPlace string
	DeathDate  Date
	DeathPlace string
	DeathCause string
	Dead       bool
}

// Spouse is one marriage record.
type Spouse struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name" yaml:"name"`
	From    Date   `json:"from" yaml:"from"`
	To      Date   `json:"to" yaml:"to"`
	Current bool   `json:"current" yaml:"current"`
	Notes   string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Salary is one reported payment for a title.
type Salary struct {
	TitleID string `json:"titleId" yaml:"titleId"`
	Title   string `json:"title" yaml:"title"`
	Year    int    `json:"year" yaml:"year"`
	Amount  string `json:"amount" yaml:"amount"`
}

// KnownForTitle is one "known for" entry.
type KnownForTitle struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Year  int    `json:"year" yaml:"year"`
	Kind  string `json:"kind" yaml:"kind"`
}

// NewName creates a Name for the given identifier ("nm0000008" or a
// bare numeric form). Nothing is fetched until an accessor is called.
func NewName(c *Client, id string) (*Name, error) {
	canonical, err := canonicalID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid name id: %w", err)
	}
	return &Name{
		client:  c,
		id:      canonical,
		fetched: make(map[string]bool),
	}, nil
}

// ID returns the canonical numeric identifier (leading zeros kept).
func (n *Name) ID() string {
	return n.id
}

func (n *Name) prefixedID() string {
	return "nm" + n.id
}

const nameMainQuery = `query NameMain($id: ID!) {
  name(id: $id) {
    nameText {
      text
    }
    bio {
      text {
        plainText
      }
    }
    height {
      measurement {
        value
      }
    }
    primaryImage {
      url
      width
      height
    }
    birthDate {
      dateComponents {
        day
        month
        year
      }
    }
    birthLocation {
      text
    }
    deathDate {
      dateComponents {
        day
        month
        year
      }
    }
    deathLocation {
      text
    }
    deathCause {
      text
    }
    deathStatus
  }
}`

func (n *Name) ensureMain(ctx context.Context) error {
	if n.fetched["main"] {
		return nil
	}

	data, err := n.client.query(ctx, "NameMain", nameMainQuery, map[string]any{"id": n.prefixedID()})
	if err != nil {
		return err
	}

	var payload struct {
		Name *struct {
			NameText *textValue `json:"nameText"`
			Bio      *struct {
				Text *plainTextValue `json:"text"`
			} `json:"bio"`
			Height *struct {
				Measurement *struct {
					Value float64 `json:"value"`
				} `json:"measurement"`
			} `json:"height"`
			PrimaryImage *imageValue `json:"primaryImage"`
			BirthDate    *struct {
				DateComponents *dateComponents `json:"dateComponents"`
			} `json:"birthDate"`
			BirthLocation *textValue `json:"birthLocation"`
			DeathDate     *struct {
				DateComponents *dateComponents `json:"dateComponents"`
			} `json:"deathDate"`
			DeathLocation *textValue `json:"deathLocation"`
			DeathCause    *textValue `json:"deathCause"`
			DeathStatus   string     `json:"deathStatus"`
		} `json:"name"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("NameMain: %w", err)
	}

	if nm := payload.Name; nm != nil {
		n.main.FullName = nm.NameText.text()
		if nm.Bio != nil {
			n.main.Bio = nm.Bio.Text.text()
		}
		if nm.Height != nil && nm.Height.Measurement != nil {
			n.main.HeightCm = int(nm.Height.Measurement.Value)
		}
		n.main.Portrait = nm.PrimaryImage.image()
		if nm.BirthDate != nil {
			n.main.BirthDate = nm.BirthDate.DateComponents.date()
		}
		n.main.BirthPlace = nm.BirthLocation.text()
		if nm.DeathDate != nil {
			n.main.DeathDate = nm.DeathDate.DateComponents.date()
		}
		n.main.DeathPlace = nm.DeathLocation.text()
		n.main.DeathCause = nm.DeathCause.text()
		n.main.Dead = nm.DeathStatus == "DEAD"
	}

	n.fetched["main"] = true
	return nil
}

// FullName returns the person's display name, or "".
func (n *Name) FullName(ctx context.Context) (string, error) {
	if err := n.ensureMain(ctx); err != nil {
		return "", err
	}
	return n.main.FullName, nil
}

// Bio returns the primary biography text, or "".
func (n *Name) Bio(ctx context.Context) (string, error) {
	if err := n.ensureMain(ctx); err != nil {
		return "", err
	}
	return n.main.Bio, nil
}

// Height returns the height in centimeters, or 0.
func (n *Name) Height(ctx context.Context) (int, error) {
	if err := n.ensureMain(ctx); err != nil {
		return 0, err
	}
	return n.main.HeightCm, nil
}

// Portrait returns the primary image, zero when the person has none.
func (n *Name) Portrait(ctx context.Context) (Image, error) {
	if err := n.ensureMain(ctx); err != nil {
		return Image{}, err
	}
	return n.main.Portrait, nil
}

// Birth returns the birth date and place; both zero when unavailable.
func (n *Name) Birth(ctx context.Context) (Date, string, error) {
	if err := n.ensureMain(ctx); err != nil {
		return Date{}, "", err
	}
	return n.main.BirthDate, n.main.BirthPlace, nil
}

// Death holds the death record of a person.
type Death struct {
	Date  Date   `json:"date" yaml:"date"`
	Place string `json:"place,omitempty" yaml:"place,omitempty"`
	Cause string `json:"cause,omitempty" yaml:"cause,omitempty"`
	Dead  bool   `json:"dead" yaml:"dead"`
}

// Death returns the death record; Dead is false for the living and the
// other fields are zero.
func (n *Name) Death(ctx context.Context) (Death, error) {
	if err := n.ensureMain(ctx); err != nil {
		return Death{}, err
	}
	return Death{
		Date:  n.main.DeathDate,
		Place: n.main.DeathPlace,
		Cause: n.main.DeathCause,
		Dead:  n.main.Dead,
	}, nil
}

const spouseNodeFields = `          spouse {
            name {
              id
            }
            asMarkdown {
              plainText
            }
          }
          timeRange {
            fromDate {
              dateComponents {
                day
                month
                year
              }
            }
            toDate {
              dateComponents {
                day
                month
                year
              }
            }
          }
          current
          attributes {
            text
          }`

// Spouses returns the marriage records in server order, empty when
// unavailable.
func (n *Name) Spouses(ctx context.Context) ([]Spouse, error) {
	if n.fetched["spouses"] {
		return n.spouses, nil
	}

	nodes, err := n.client.fetchAll(ctx, "name", n.prefixedID(), "NameSpouses", "spouses",
		spouseNodeFields, "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Spouse *struct {
				Name       *idValue        `json:"name"`
				AsMarkdown *plainTextValue `json:"asMarkdown"`
			} `json:"spouse"`
			TimeRange *struct {
				FromDate *struct {
					DateComponents *dateComponents `json:"dateComponents"`
				} `json:"fromDate"`
				ToDate *struct {
					DateComponents *dateComponents `json:"dateComponents"`
				} `json:"toDate"`
			} `json:"timeRange"`
			Current    bool        `json:"current"`
			Attributes []textValue `json:"attributes"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Spouse == nil {
			continue
		}

		spouse := Spouse{
			ID:      trimRefID(node.Spouse.Name.id()),
			Name:    node.Spouse.AsMarkdown.text(),
			Current: node.Current,
		}
		if node.TimeRange != nil {
			if node.TimeRange.FromDate != nil {
				spouse.From = node.TimeRange.FromDate.DateComponents.date()
			}
			if node.TimeRange.ToDate != nil {
				spouse.To = node.TimeRange.ToDate.DateComponents.date()
			}
		}
		var notes []string
		for _, attr := range node.Attributes {
			if attr.Text != "" {
				notes = append(notes, attr.Text)
			}
		}
		if len(notes) > 0 {
			spouse.Notes = notes[0]
		}
		n.spouses = append(n.spouses, spouse)
	}

	n.fetched["spouses"] = true
	return n.spouses, nil
}

// Children returns the children's display names, empty when unavailable.
func (n *Name) Children(ctx context.Context) ([]string, error) {
	if n.fetched["children"] {
		return n.children, nil
	}

	nodes, err := n.client.fetchAll(ctx, "name", n.prefixedID(), "NameChildren", "children",
		"          relationName {\n            displayableProperty {\n              value {\n                plainText\n              }\n            }\n          }", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			RelationName *struct {
				DisplayableProperty *struct {
					Value *plainTextValue `json:"value"`
				} `json:"displayableProperty"`
			} `json:"relationName"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.RelationName == nil || node.RelationName.DisplayableProperty == nil {
			continue
		}
		if name := node.RelationName.DisplayableProperty.Value.text(); name != "" {
			n.children = append(n.children, name)
		}
	}

	n.fetched["children"] = true
	return n.children, nil
}

// textListAccessor walks a plain-text connection shared by trademarks,
// quotes and trivia.
func (n *Name) textListAccessor(ctx context.Context, key, operation, field string) ([]string, error) {
	nodes, err := n.client.fetchAll(ctx, "name", n.prefixedID(), operation, field,
		"          displayableArticle {\n            body {\n              plainText\n            }\n          }", "")
	if err != nil {
		return nil, err
	}

	var out []string
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
			out = append(out, text)
		}
	}

	n.fetched[key] = true
	return out, nil
}

// Trademarks returns the person's trademarks, empty when unavailable.
func (n *Name) Trademarks(ctx context.Context) ([]string, error) {
	if n.fetched["trademarks"] {
		return n.trademarks, nil
	}
	out, err := n.textListAccessor(ctx, "trademarks", "NameTrademarks", "trademarks")
	if err != nil {
		return nil, err
	}
	n.trademarks = out
	return n.trademarks, nil
}

// Quotes returns things the person has said, empty when unavailable.
func (n *Name) Quotes(ctx context.Context) ([]string, error) {
	if n.fetched["quotes"] {
		return n.quotes, nil
	}
	out, err := n.textListAccessor(ctx, "quotes", "NameQuotes", "quotes")
	if err != nil {
		return nil, err
	}
	n.quotes = out
	return n.quotes, nil
}

// Trivia returns trivia entries, empty when unavailable.
func (n *Name) Trivia(ctx context.Context) ([]string, error) {
	if n.fetched["trivia"] {
		return n.trivia, nil
	}
	out, err := n.textListAccessor(ctx, "trivia", "NameTrivia", "trivia")
	if err != nil {
		return nil, err
	}
	n.trivia = out
	return n.trivia, nil
}

const salaryNodeFields = `          title {
            id
            titleText {
              text
            }
            releaseYear {
              year
            }
          }
          amount {
            amount
            currency
          }`

// Salaries returns reported salaries per title, empty when unavailable.
// Amount keeps the upstream currency code ("1000000 USD").
func (n *Name) Salaries(ctx context.Context) ([]Salary, error) {
	if n.fetched["salaries"] {
		return n.salaries, nil
	}

	nodes, err := n.client.fetchAll(ctx, "name", n.prefixedID(), "NameSalaries", "titleSalaries",
		salaryNodeFields, "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node struct {
			Title  *titleRef `json:"title"`
			Amount *struct {
				Amount   float64 `json:"amount"`
				Currency string  `json:"currency"`
			} `json:"amount"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Title == nil {
			continue
		}
		salary := Salary{
			TitleID: node.Title.refID(),
			Title:   node.Title.title(),
			Year:    node.Title.year(),
		}
		if node.Amount != nil {
			salary.Amount = fmt.Sprintf("%.0f %s", node.Amount.Amount, node.Amount.Currency)
		}
		n.salaries = append(n.salaries, salary)
	}

	n.fetched["salaries"] = true
	return n.salaries, nil
}

// AKAs returns the person's alternate names, empty when unavailable.
func (n *Name) AKAs(ctx context.Context) ([]string, error) {
	if n.fetched["akas"] {
		return n.akas, nil
	}

	nodes, err := n.client.fetchAll(ctx, "name", n.prefixedID(), "NameAKAs", "akas",
		"          text", "")
	if err != nil {
		return nil, err
	}

	for _, raw := range nodes {
		var node textValue
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Text != "" {
			n.akas = append(n.akas, node.Text)
		}
	}

	n.fetched["akas"] = true
	return n.akas, nil
}

const nameKnownForQuery = `query NameKnownFor($id: ID!) {
  name(id: $id) {
    knownFor(first: 10) {
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
          }
        }
      }
    }
  }
}`

// KnownFor returns the titles the person is known for, empty when
// unavailable.
func (n *Name) KnownFor(ctx context.Context) ([]KnownForTitle, error) {
	if n.fetched["knownFor"] {
		return n.knownFor, nil
	}

	data, err := n.client.query(ctx, "NameKnownFor", nameKnownForQuery, map[string]any{"id": n.prefixedID()})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Name *struct {
			KnownFor *struct {
				Edges []struct {
					Node *struct {
						Title *titleRef `json:"title"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"knownFor"`
		} `json:"name"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("NameKnownFor: %w", err)
	}

	if payload.Name != nil && payload.Name.KnownFor != nil {
		for _, edge := range payload.Name.KnownFor.Edges {
			if edge.Node == nil || edge.Node.Title == nil {
				continue
			}
			n.knownFor = append(n.knownFor, KnownForTitle{
				ID:    edge.Node.Title.refID(),
				Title: edge.Node.Title.title(),
				Year:  edge.Node.Title.year(),
				Kind:  edge.Node.Title.kind(),
			})
		}
	}

	n.fetched["knownFor"] = true
	return n.knownFor, nil
}
