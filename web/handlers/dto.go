package handlers

import (
	"time"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
	"portalsst.com/portalsst/web/common"
)

// RowDTO is one spreadsheet row on the wire: column name to cell text,
// dates in the canonical yyyy-MM-dd form, "" for absent.
type RowDTO map[string]string

type FilterDTO struct {
	Name    string           `json:"name"`
	Setores []string         `json:"setores"`
	From    *common.DateOnly `json:"from"`
	To      *common.DateOnly `json:"to"`
}

func (f FilterDTO) toSpec() core.FilterSpec {
	return core.FilterSpec{
		Name:    f.Name,
		Setores: f.Setores,
		From:    f.From.Ptr(),
		To:      f.To.Ptr(),
	}
}

type TableDTO struct {
	Name    string                       `json:"name"`
	Columns []string                     `json:"columns"`
	Rows    []RowDTO                     `json:"rows"`
	Setores []string                     `json:"setores,omitempty"`
	Summary map[string]map[string]int    `json:"summary,omitempty"`
	Colors  map[core.Status]string       `json:"colors,omitempty"`
}

func rowToDTO(r core.Row, columns []string) RowDTO {
	out := make(RowDTO, len(columns))
	for _, col := range columns {
		cell := r.Get(col)
		if cell.Date != nil {
			out[col] = cell.Date.Format(store.StoreDateLayout)
		} else {
			out[col] = cell.Text
		}
	}
	return out
}

// tableToDTO renders a table for display: deadlines and statuses are
// recomputed here so every response reflects today's classification.
func tableToDTO(t *core.Table, today time.Time) TableDTO {
	schema := core.SchemaFor(t.Name)
	view := t.Clone()
	core.ApplyStatuses(view, schema, today)

	dto := TableDTO{
		Name:    view.Name,
		Columns: view.Columns,
		Rows:    utils.Map(view.Rows, func(r core.Row) RowDTO { return rowToDTO(r, view.Columns) }),
		Setores: view.SetorValues(),
		Summary: map[string]map[string]int{},
		Colors:  core.StatusColors,
	}
	for _, rule := range schema.Deadlines {
		counts := core.Summarize(view, rule.Target, today)
		bucket := make(map[string]int, len(counts))
		for s, n := range counts {
			bucket[string(s)] = n
		}
		dto.Summary[rule.Target] = bucket
	}
	return dto
}

// rowsToTable rebuilds a core table from wire rows, running the same
// parsing path a store load uses (dates, deadline recomputation).
func rowsToTable(name string, columns []string, rows []RowDTO) *core.Table {
	grid := [][]string{columns}
	for _, r := range rows {
		rec := make([]string, len(columns))
		for i, col := range columns {
			rec[i] = r[col]
		}
		grid = append(grid, rec)
	}
	return store.FromRows(name, grid)
}
