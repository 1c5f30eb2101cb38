package utils

import (
	"fmt"
	"time"
)

// BrasiliaTZ is the plant's timezone. A fixed offset keeps behaviour
// identical on hosts without tzdata (Lambda, scratch containers).
var BrasiliaTZ = time.FixedZone("UTC-3", -3*60*60)

func BrasiliaNow() time.Time {
	return time.Now().In(BrasiliaTZ)
}

// Today is midnight in Brasília, the reference for all classifications.
func Today() time.Time {
	n := BrasiliaNow()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, BrasiliaTZ)
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}

// dateLayouts covers what shows up in the spreadsheets: ISO dates from the
// store, Brazilian day-first dates typed by users, and the timestamp format
// Google Forms writes into the inspection tab.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate parses a cell value into a date, trying the known layouts.
// Returns nil for a blank or unrecognized value; never an error, since a
// malformed cell must not fail a whole table load.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

// FormatDate renders a date pointer with the given layout, empty for nil.
func FormatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	if t := ParseDate(s); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("failed to parse time: %v", s)
}
