// Package store adapts spreadsheet-style backends to the core table model.
// Every backend speaks rows-of-strings; the parsing, deadline derivation
// and save-time stripping live here so the backends stay dumb.
package store

import (
	"context"
	"errors"

	"portalsst.com/portalsst/core"
)

// ErrTableNotFound distinguishes a missing tab from an empty one.
var ErrTableNotFound = errors.New("table not found")

// ErrReadOnly is returned by backends that cannot write (published Google
// Sheets, legacy .xls workbooks).
var ErrReadOnly = errors.New("store is read-only")

// TableStore is the backing-store contract: whole tables in, whole tables
// out. Save replaces the entire table; there are no row-level writes.
type TableStore interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, table string) (*core.Table, error)
	Save(ctx context.Context, table string, t *core.Table) error
}

// StoreDateLayout is the canonical on-store date format.
const StoreDateLayout = "2006-01-02"
