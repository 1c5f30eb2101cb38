package core

import (
	"strings"
	"time"
)

// Column names of the ladder-inspection tab (filled by a Google Form, so
// the timestamp column carries the form's submission header).
const (
	LadderColID     = "Número de Identificação"
	LadderColData   = "Carimbo de data/hora"
	LadderColStatus = "Status da Inspeção"
	LadderColFoto   = "Foto"
)

// InspectionValidityDays: a ladder inspection is good for one year.
const InspectionValidityDays = 365

// LadderStatus is the consolidated view for one asset. Inspections
// accumulate; the most recent row is authoritative for current status,
// the rest stays as history.
type LadderStatus struct {
	ID             string
	LastInspection *time.Time
	NextDue        *time.Time
	Approved       bool
	Status         Status
	FotoURL        string
	History        []Row
}

// BuildLadderStatus resolves an asset id (typed or scanned from the QR
// label) against the inspection tab. Returns false when nothing matches.
func BuildLadderStatus(t *Table, rawID string, today time.Time) (*LadderStatus, bool) {
	matches := FindByIdentifier(t, LadderColID, rawID)
	if len(matches) == 0 {
		return nil, false
	}

	last := matches[len(matches)-1]
	inspected := last.Date(LadderColData)

	var due *time.Time
	if inspected != nil {
		d := Midnight(*inspected).AddDate(0, 0, InspectionValidityDays)
		due = &d
	}

	return &LadderStatus{
		ID:             NormalizeIdentifier(rawID),
		LastInspection: inspected,
		NextDue:        due,
		Approved:       strings.Contains(strings.ToLower(last.Text(LadderColStatus)), "aprovada"),
		Status:         Classify(due, today),
		FotoURL:        PhotoURL(last.Text(LadderColFoto)),
		History:        matches,
	}, true
}
