package store

import (
	"strings"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/utils"
)

// FromRows builds a table from a raw header-plus-rows grid, applying the
// load-time normalization every backend shares:
//   - fully-empty rows are dropped;
//   - columns the schema declares as dates are parsed, unparseable cells
//     becoming absent values rather than errors;
//   - deadline columns are recomputed from their source columns, ignoring
//     whatever the store held.
func FromRows(table string, rows [][]string) *core.Table {
	schema := core.SchemaFor(table)

	if len(rows) == 0 {
		return core.NewTable(table, nil)
	}

	header := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		header = append(header, strings.TrimSpace(h))
	}

	dateCols := map[string]bool{}
	for _, c := range schema.DateColumns {
		dateCols[c] = true
	}

	t := core.NewTable(table, header)
	for _, raw := range rows[1:] {
		row := make(core.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			val := ""
			if i < len(raw) {
				val = strings.TrimSpace(raw[i])
			}
			if dateCols[col] {
				row[col] = core.DateCell(utils.ParseDate(val))
			} else {
				row[col] = core.TextCell(val)
			}
		}
		if row.IsEmpty() {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	core.ApplyDeadlines(t, schema)
	return t
}

// ForSave prepares a table for persistence: display-only status columns
// are stripped and a grid of strings is produced, dates in the canonical
// store format and absent values as the empty-string sentinel (the store
// has no null). The input table is not modified.
func ForSave(t *core.Table) [][]string {
	schema := core.SchemaFor(t.Name)

	clean := t.Clone()
	clean.DropColumns(schema.StatusCols...)

	out := make([][]string, 0, len(clean.Rows)+1)
	out = append(out, append([]string(nil), clean.Columns...))
	for _, r := range clean.Rows {
		rec := make([]string, len(clean.Columns))
		for i, col := range clean.Columns {
			cell := r.Get(col)
			if cell.Date != nil {
				rec[i] = cell.Date.Format(StoreDateLayout)
			} else {
				rec[i] = cell.Text
			}
		}
		out = append(out, rec)
	}
	return out
}
