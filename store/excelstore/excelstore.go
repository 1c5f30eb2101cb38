// Package excelstore keeps the tables in a local workbook, one sheet per
// table. Modern .xlsx workbooks are read and written with excelize; legacy
// .xls workbooks can only be read (via xlsReader) and reject saves.
package excelstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
)

type Store struct {
	path string
	log  *zap.Logger
}

func New(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

func (s *Store) legacy() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".xls")
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.legacy() {
		wb, err := xls.OpenFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
		}
		var names []string
		for _, sheet := range wb.GetSheets() {
			names = append(names, sheet.GetName())
		}
		return names, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func (s *Store) Load(ctx context.Context, table string) (*core.Table, error) {
	if s.legacy() {
		return s.loadLegacy(table)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(table); idx < 0 {
		return nil, fmt.Errorf("sheet %s: %w", table, store.ErrTableNotFound)
	}

	rows, err := f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", table, err)
	}

	s.log.Debug("loaded sheet", zap.String("table", table), zap.Int("rows", len(rows)))
	return store.FromRows(table, rows), nil
}

func (s *Store) loadLegacy(table string) (*core.Table, error) {
	wb, err := xls.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}

	for i := range wb.GetSheets() {
		sheet, err := wb.GetSheet(i)
		if err != nil {
			continue
		}
		if sheet.GetName() != table {
			continue
		}
		var rows [][]string
		for _, r := range sheet.GetRows() {
			var rec []string
			for _, c := range r.GetCols() {
				rec = append(rec, c.GetString())
			}
			rows = append(rows, rec)
		}
		return store.FromRows(table, rows), nil
	}

	return nil, fmt.Errorf("sheet %s: %w", table, store.ErrTableNotFound)
}

// Save replaces the whole sheet. The replacement grid is fully built
// before the sheet is touched, so a marshalling problem cannot leave a
// half-cleared table behind; an I/O failure on write leaves the previous
// file intact because excelize only persists on SaveAs.
func (s *Store) Save(ctx context.Context, table string, t *core.Table) error {
	if s.legacy() {
		return fmt.Errorf("workbook %s: %w", s.path, store.ErrReadOnly)
	}

	grid := store.ForSave(t)

	created := false
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		// an existing workbook that cannot be opened must not be replaced;
		// only a missing path starts a new one
		if _, statErr := os.Stat(s.path); !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("open workbook %s: %w", s.path, err)
		}
		f = excelize.NewFile()
		created = true
	}
	defer f.Close()

	// write into a scratch sheet first, then swap names: the old table is
	// only cleared once its replacement is complete
	scratch := table + "__new"
	if _, err := f.NewSheet(scratch); err != nil {
		return fmt.Errorf("create sheet %s: %w", scratch, err)
	}
	for i, rec := range grid {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(scratch, addr, &rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if idx, _ := f.GetSheetIndex(table); idx >= 0 {
		if err := f.DeleteSheet(table); err != nil {
			return fmt.Errorf("clear sheet %s: %w", table, err)
		}
	}
	if err := f.SetSheetName(scratch, table); err != nil {
		return fmt.Errorf("rename sheet %s: %w", scratch, err)
	}
	if created && table != "Sheet1" {
		// a fresh workbook carries excelize's default sheet; left in place
		// it would show up in List as a phantom table
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}

	s.log.Info("saved sheet", zap.String("table", table), zap.Int("rows", len(t.Rows)))
	return nil
}
