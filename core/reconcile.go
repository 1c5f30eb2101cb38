package core

import (
	"fmt"
	"strings"
)

// DuplicateNameError blocks a save: NOME is the row key during
// reconciliation, and the merge is not well defined when two rows share
// one. The caller surfaces the names and performs no store mutation.
type DuplicateNameError struct {
	Table string
	Names []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate NOME in table %s: %s", e.Table, strings.Join(e.Names, ", "))
}

func duplicateNames(t *Table) []string {
	seen := map[string]int{}
	for _, r := range t.Rows {
		seen[r.Text(ColNome)]++
	}
	var dups []string
	for _, r := range t.Rows {
		name := r.Text(ColNome)
		if seen[name] > 1 {
			seen[name] = 0 // report once
			if name == "" {
				name = "(sem nome)"
			}
			dups = append(dups, name)
		}
	}
	return dups
}

// Reconcile merges a user-edited view back into the authoritative table.
//
// With no active filter the edited view is the whole table and simply
// replaces it. With a filter, only rows the filter exposed were editable:
// matching rows are updated in place, rows that vanished from the view are
// deleted, new rows are appended, and rows the filter hid are kept exactly
// as they were. Saving the edited view directly would silently drop every
// hidden row.
//
// All or nothing: any duplicate NOME in either input aborts before a
// single row is merged.
func Reconcile(full *Table, f FilterSpec, edited *Table) (*Table, error) {
	if dups := duplicateNames(edited); dups != nil {
		return nil, &DuplicateNameError{Table: edited.Name, Names: dups}
	}
	if f.IsZero() {
		return edited.Clone(), nil
	}
	if dups := duplicateNames(full); dups != nil {
		return nil, &DuplicateNameError{Table: full.Name, Names: dups}
	}

	editedByName := make(map[string]Row, len(edited.Rows))
	for _, r := range edited.Rows {
		editedByName[r.Text(ColNome)] = r
	}

	out := NewTable(full.Name, full.Columns)
	for _, c := range edited.Columns {
		out.EnsureColumn(c)
	}

	consumed := map[string]bool{}
	for _, r := range full.Rows {
		if !f.Matches(r) {
			out.Rows = append(out.Rows, r.Clone())
			continue
		}
		name := r.Text(ColNome)
		if e, ok := editedByName[name]; ok {
			out.Rows = append(out.Rows, e.Clone())
			consumed[name] = true
		}
		// matched the filter but absent from the view: deleted
	}

	// rows the user added to the view
	for _, r := range edited.Rows {
		if !consumed[r.Text(ColNome)] {
			out.Rows = append(out.Rows, r.Clone())
		}
	}

	// an added row may collide with a row the filter hid
	if dups := duplicateNames(out); dups != nil {
		return nil, &DuplicateNameError{Table: full.Name, Names: dups}
	}

	return out, nil
}
