// Package dbstore mirrors the spreadsheet tables into a relational
// database, keeping the portal queryable when the workbook lives on a
// network share. Rows are stored as JSON cell maps per table and
// position, so the dynamic spreadsheet columns survive unchanged.
package dbstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
)

type tableMeta struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"uniqueIndex;size:128"`
	Columns string // JSON array, preserves column order
}

func (tableMeta) TableName() string { return "sheet_tables" }

type tableRow struct {
	ID       uint   `gorm:"primaryKey"`
	Table    string `gorm:"column:table_name;index;size:128"`
	Position int
	Cells    string // JSON object column -> string value
}

func (tableRow) TableName() string { return "sheet_rows" }

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New opens the mirror store and migrates its two tables. The dialector
// is injected so production runs MySQL while tests run SQLite.
func New(dialector gorm.Dialector, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&tableMeta{}, &tableRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&tableMeta{}).
		Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

func (s *Store) Load(ctx context.Context, table string) (*core.Table, error) {
	var meta tableMeta
	err := s.db.WithContext(ctx).Where("name = ?", table).Take(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("table %s: %w", table, store.ErrTableNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", table, err)
	}

	var columns []string
	if err := json.Unmarshal([]byte(meta.Columns), &columns); err != nil {
		return nil, fmt.Errorf("decode columns for %s: %w", table, err)
	}

	var stored []tableRow
	if err := s.db.WithContext(ctx).Where("table_name = ?", table).
		Order("position").Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("load rows for %s: %w", table, err)
	}

	grid := [][]string{columns}
	for _, r := range stored {
		cells := map[string]string{}
		if err := json.Unmarshal([]byte(r.Cells), &cells); err != nil {
			return nil, fmt.Errorf("decode row %d of %s: %w", r.Position, table, err)
		}
		rec := make([]string, len(columns))
		for i, col := range columns {
			rec[i] = cells[col]
		}
		grid = append(grid, rec)
	}

	return store.FromRows(table, grid), nil
}

// Save replaces the table inside one transaction: either the new content
// lands completely or the previous rows stay untouched.
func (s *Store) Save(ctx context.Context, table string, t *core.Table) error {
	grid := store.ForSave(t)
	columns := grid[0]

	colsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}

	rows := make([]tableRow, 0, len(grid)-1)
	for i, rec := range grid[1:] {
		cells := map[string]string{}
		for j, col := range columns {
			if col == "" {
				continue
			}
			cells[col] = rec[j]
		}
		payload, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		rows = append(rows, tableRow{Table: table, Position: i, Cells: string(payload)})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta tableMeta
		err := tx.Where("name = ?", table).Take(&meta).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			meta = tableMeta{Name: table, Columns: string(colsJSON)}
			if err := tx.Create(&meta).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			meta.Columns = string(colsJSON)
			if err := tx.Save(&meta).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("table_name = ?", table).Delete(&tableRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save table %s: %w", table, err)
	}

	s.log.Info("saved table", zap.String("table", table), zap.Int("rows", len(rows)))
	return nil
}
