package core

import (
	"time"
)

// Cell is one value in a table. Date is set only for columns the table's
// schema declares as dates; an unparseable or blank date keeps Date nil.
type Cell struct {
	Text string
	Date *time.Time
}

func TextCell(s string) Cell {
	return Cell{Text: s}
}

func DateCell(t *time.Time) Cell {
	return Cell{Date: t}
}

// Row maps column name to cell. Missing columns read as zero cells.
type Row map[string]Cell

func (r Row) Get(col string) Cell {
	return r[col]
}

func (r Row) Text(col string) string {
	return r[col].Text
}

func (r Row) Date(col string) *time.Time {
	return r[col].Date
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsEmpty reports whether every cell in the row is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if c.Text != "" || c.Date != nil {
			return false
		}
	}
	return true
}

// Table is an ordered sequence of rows sharing a column layout, the
// in-memory image of one spreadsheet tab.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

func NewTable(name string, columns []string) *Table {
	return &Table{Name: name, Columns: append([]string(nil), columns...)}
}

func (t *Table) Clone() *Table {
	out := NewTable(t.Name, t.Columns)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// EnsureColumn appends the column to the layout if it is not present yet.
func (t *Table) EnsureColumn(col string) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
}

// DropColumns removes the named columns from the layout and from every row.
func (t *Table) DropColumns(cols ...string) {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for c := range drop {
			delete(r, c)
		}
	}
}

// SetorValues returns the distinct non-blank sector values in row order,
// feeding the "filter by sector" multi-select.
func (t *Table) SetorValues() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range t.Rows {
		v := r.Text(ColSetor)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
