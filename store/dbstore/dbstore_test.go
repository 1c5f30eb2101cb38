package dbstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(sqlite.Open(filepath.Join(t.TempDir(), "mirror.db")), nil)
	require.NoError(t, err)
	return s
}

func TestLoadMissingTable(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "NR_33")
	require.ErrorIs(t, err, store.ErrTableNotFound)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tbl := store.FromRows(core.TableNR35, [][]string{
		{"NOME", "UNIDADE", "SETOR", "DATA DE REALIZAÇÃO"},
		{"João", "Matriz", "Produção", "2023-01-15"},
		{"Maria", "Filial", "Manutenção", ""},
	})
	core.ApplyStatuses(tbl, core.NR35Schema, utils.MustParseDate("2025-01-20"))

	require.NoError(t, s.Save(ctx, core.TableNR35, tbl))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, core.TableNR35)

	loaded, err := s.Load(ctx, core.TableNR35)
	require.NoError(t, err)
	require.Len(t, loaded.Rows, 2)

	assert.Equal(t, "João", loaded.Rows[0].Text(core.ColNome))
	require.NotNil(t, loaded.Rows[0].Date(core.ColVencimento))
	assert.Equal(t, utils.MustParseDate("2025-01-15"), *loaded.Rows[0].Date(core.ColVencimento))

	// status columns never reach the store
	assert.False(t, loaded.HasColumn(core.ColStatusTreinamento))
}

func TestSaveReplacesWholeTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := store.FromRows("NR_12", [][]string{
		{"NOME", "SETOR"},
		{"A", "X"},
		{"B", "Y"},
	})
	require.NoError(t, s.Save(ctx, "NR_12", first))

	second := store.FromRows("NR_12", [][]string{
		{"NOME", "SETOR"},
		{"C", "Z"},
	})
	require.NoError(t, s.Save(ctx, "NR_12", second))

	loaded, err := s.Load(ctx, "NR_12")
	require.NoError(t, err)
	require.Len(t, loaded.Rows, 1)
	assert.Equal(t, "C", loaded.Rows[0].Text(core.ColNome))
}
