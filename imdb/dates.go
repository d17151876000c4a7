package imdb

import (
	"time"
)

// Date is the decomposed form of a server date-components object.
// Missing components are zero values: 0 for the numeric fields, ""
// for the month name. The name is only derived when the numeric
// month is present and valid.
type Date struct {
	Day   int    `json:"day" yaml:"day"`
	Month string `json:"month" yaml:"month"`
	Mon   int    `json:"mon" yaml:"mon"`
	Year  int    `json:"year" yaml:"year"`
}

// IsZero reports whether no component is set.
func (d Date) IsZero() bool {
	return d.Day == 0 && d.Mon == 0 && d.Year == 0
}

// decomposeDate expands numeric date components into the public shape.
func decomposeDate(day, mon, year int) Date {
	d := Date{Day: day, Year: year}
	if mon >= 1 && mon <= 12 {
		d.Mon = mon
		d.Month = time.Month(mon).String()
	}
	return d
}

const isoDateLayout = "2006-01-02"

// checkReleaseDates validates the advanced-search date range. Dates must
// be ISO YYYY-MM-DD; an empty start falls back to 1900-01-01 and an
// empty end to today. Any malformed input fails the whole range (the
// caller then returns an empty result list, fail closed).
func checkReleaseDates(startDate, endDate string) (string, string, bool) {
	if startDate == "" && endDate == "" {
		return "", "", false
	}

	if startDate == "" {
		startDate = "1900-01-01"
	} else if !validISODate(startDate) {
		return "", "", false
	}

	if endDate == "" {
		endDate = time.Now().Format(isoDateLayout)
	} else if !validISODate(endDate) {
		return "", "", false
	}

	return startDate, endDate, true
}

func validISODate(s string) bool {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return false
	}
	// time.Parse accepts some shapes we do not, e.g. "2024-1-2" fails
	// already, but round-trip to be strict about zero padding.
	return t.Format(isoDateLayout) == s
}
