package core

import "time"

// Status classifies a deadline against today. The values are the strings
// the dashboards and spreadsheets use.
type Status string

const (
	StatusOK       Status = "OK"
	StatusExpiring Status = "Vencendo"
	StatusExpired  Status = "Vencido"
	StatusNoDate   Status = "Sem Data"
)

// ExpiringWindowDays is the lookahead for the "Vencendo" band, inclusive.
const ExpiringWindowDays = 30

// StatusColors matches the dashboard palette.
var StatusColors = map[Status]string{
	StatusExpired:  "#FF5252",
	StatusExpiring: "#FFA726",
	StatusOK:       "#66BB6A",
	StatusNoDate:   "#B0BEC5",
}

// Midnight strips the time of day so classification is stable within a
// calendar day regardless of wall clock.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Classify is pure and total: exactly one of the four statuses for any
// deadline/today pair.
func Classify(deadline *time.Time, today time.Time) Status {
	if deadline == nil {
		return StatusNoDate
	}
	d := Midnight(*deadline)
	h := Midnight(today)
	switch {
	case d.Before(h):
		return StatusExpired
	case !d.After(h.AddDate(0, 0, ExpiringWindowDays)):
		return StatusExpiring
	default:
		return StatusOK
	}
}

// ApplyStatuses fills the display-only status columns for every deadline
// rule in the schema. Call on each render, after ApplyDeadlines.
func ApplyStatuses(t *Table, s Schema, today time.Time) {
	for _, rule := range s.Deadlines {
		if rule.StatusCol == "" {
			continue
		}
		t.EnsureColumn(rule.StatusCol)
		for _, r := range t.Rows {
			r[rule.StatusCol] = TextCell(string(Classify(r.Date(rule.Target), today)))
		}
	}
}

// Summarize counts rows per status for one deadline column, feeding the
// dashboard pies. Every row lands in exactly one bucket.
func Summarize(t *Table, deadlineCol string, today time.Time) map[Status]int {
	out := map[Status]int{}
	for _, r := range t.Rows {
		out[Classify(r.Date(deadlineCol), today)]++
	}
	return out
}
