package imdb

import (
	"context"
	"encoding/json"
	"fmt"
)

// Award is one award nomination or win.
type Award struct {
	EventID  string `json:"eventId" yaml:"eventId"`
	Event    string `json:"event" yaml:"event"`
	Year     int    `json:"year" yaml:"year"`
	Award    string `json:"award" yaml:"award"`
	Category string `json:"category" yaml:"category"`
	IsWinner bool   `json:"isWinner" yaml:"isWinner"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

const awardNodeFields = `          award {
            id
            text
            year
            event {
              id
              text
            }
            category {
              text
            }
          }
          isWinner
          notes {
            plainText
          }`

// awardKey builds the map key: event name plus year ("Academy Awards,
// USA 1972"). Nominations missing either piece land under what is left.
func awardKey(event string, year int) string {
	switch {
	case event == "" && year == 0:
		return "unknown"
	case event == "":
		return fmt.Sprintf("%d", year)
	case year == 0:
		return event
	default:
		return fmt.Sprintf("%s %d", event, year)
	}
}

// Awards returns every award nomination keyed by event name and year,
// empty when unavailable. Within one key, server order is kept.
func (t *Title) Awards(ctx context.Context) (map[string][]Award, error) {
	if t.fetched["awards"] {
		return t.awards, nil
	}

	nodes, err := t.client.fetchAll(ctx, "title", t.prefixedID(), "TitleAwards", "awardNominations",
		awardNodeFields, "")
	if err != nil {
		return nil, err
	}

	awards := make(map[string][]Award)
	for _, raw := range nodes {
		var node struct {
			Award *struct {
				ID       string       `json:"id"`
				Text     string       `json:"text"`
				Year     int          `json:"year"`
				Event    *idTextValue `json:"event"`
				Category *textValue   `json:"category"`
			} `json:"award"`
			IsWinner bool            `json:"isWinner"`
			Notes    *plainTextValue `json:"notes"`
		}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		if node.Award == nil {
			continue
		}

		award := Award{
			Award:    node.Award.Text,
			Year:     node.Award.Year,
			IsWinner: node.IsWinner,
			Notes:    node.Notes.text(),
		}
		if node.Award.Event != nil {
			award.EventID = trimRefID(node.Award.Event.ID)
			award.Event = node.Award.Event.Text
		}
		if node.Award.Category != nil {
			award.Category = node.Award.Category.Text
		}

		key := awardKey(award.Event, award.Year)
		awards[key] = append(awards[key], award)
	}

	t.awards = awards
	t.fetched["awards"] = true
	return t.awards, nil
}
