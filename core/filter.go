package core

import (
	"strings"
	"time"

	"portalsst.com/portalsst/utils"
)

// FilterSpec is the view filter the UI builds: name substring, sector
// multi-select and a deadline date range. The zero value means "no filter".
type FilterSpec struct {
	Name    string
	Setores []string
	From    *time.Time
	To      *time.Time
}

func (f FilterSpec) IsZero() bool {
	return f.Name == "" && len(f.Setores) == 0 && f.From == nil && f.To == nil
}

// Matches applies all active predicates to one row.
//   - Name: case- and accent-insensitive substring; a row without a name
//     never matches a non-empty name filter.
//   - Setores: set membership; an empty selection selects everything.
//   - From/To: inclusive date-only range on the training deadline; rows
//     without a deadline cannot be judged in range and are excluded.
func (f FilterSpec) Matches(r Row) bool {
	if f.Name != "" {
		nome := r.Text(ColNome)
		if nome == "" || !strings.Contains(utils.Fold(nome), utils.Fold(f.Name)) {
			return false
		}
	}
	if len(f.Setores) > 0 {
		setor := r.Text(ColSetor)
		found := false
		for _, s := range f.Setores {
			if s == setor {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil || f.To != nil {
		d := r.Date(ColVencimento)
		if d == nil {
			return false
		}
		day := Midnight(*d)
		if f.From != nil && day.Before(Midnight(*f.From)) {
			return false
		}
		if f.To != nil && day.After(Midnight(*f.To)) {
			return false
		}
	}
	return true
}

// ApplyFilter is a pure projection: original row order, no reordering,
// rows shared with the input (callers edit via Reconcile, not in place).
func ApplyFilter(t *Table, f FilterSpec) *Table {
	out := NewTable(t.Name, t.Columns)
	out.Rows = utils.Filter(t.Rows, f.Matches)
	return out
}
