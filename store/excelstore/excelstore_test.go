package excelstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
)

func writeFixtureWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autorizados.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", core.TableNR35))
	rows := [][]interface{}{
		{"NOME", "UNIDADE", "SETOR", "DATA DE REALIZAÇÃO", "REALIZAÇÃO ASO ALTURA"},
		{"João", "Matriz", "Produção", "2023-01-15", "2024-07-01"},
		{"Maria", "Filial", "Manutenção", "", ""},
	}
	for i, rec := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(core.TableNR35, addr, &rec))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoad(t *testing.T) {
	s := New(writeFixtureWorkbook(t), nil)
	ctx := context.Background()

	tbl, err := s.Load(ctx, core.TableNR35)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	require.NotNil(t, tbl.Rows[0].Date(core.ColVencimento))
	assert.Equal(t, utils.MustParseDate("2025-01-15"), *tbl.Rows[0].Date(core.ColVencimento))

	_, err = s.Load(ctx, "NR_33")
	require.ErrorIs(t, err, store.ErrTableNotFound)
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeFixtureWorkbook(t)
	s := New(path, nil)
	ctx := context.Background()

	tbl, err := s.Load(ctx, core.TableNR35)
	require.NoError(t, err)

	tbl.Rows = append(tbl.Rows, core.Row{
		core.ColNome:       core.TextCell("José"),
		core.ColUnidade:    core.TextCell("Matriz"),
		core.ColSetor:      core.TextCell("Logística"),
		core.ColRealizacao: core.DateCell(utils.Ptr(utils.MustParseDate("2025-02-01"))),
	})

	require.NoError(t, s.Save(ctx, core.TableNR35, tbl))

	reloaded, err := s.Load(ctx, core.TableNR35)
	require.NoError(t, err)
	require.Len(t, reloaded.Rows, 3)
	assert.Equal(t, "José", reloaded.Rows[2].Text(core.ColNome))
	require.NotNil(t, reloaded.Rows[2].Date(core.ColVencimento))
	assert.Equal(t, utils.MustParseDate("2027-02-01"), *reloaded.Rows[2].Date(core.ColVencimento))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{core.TableNR35}, names)
}

func TestSaveKeepsUnreadableWorkbookIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autorizados.xlsx")
	garbage := []byte("this is not a zip archive")
	require.NoError(t, os.WriteFile(path, garbage, 0o644))

	s := New(path, nil)
	err := s.Save(context.Background(), core.TableNR35, core.NewTable(core.TableNR35, []string{core.ColNome}))
	require.Error(t, err)

	onDisk, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, garbage, onDisk)
}

func TestSaveFreshPathStartsWorkbookWithoutDefaultSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "novo.xlsx")
	s := New(path, nil)
	ctx := context.Background()

	tbl := core.NewTable(core.TableNR35, []string{core.ColNome, core.ColSetor})
	tbl.Rows = []core.Row{{
		core.ColNome:  core.TextCell("João"),
		core.ColSetor: core.TextCell("Produção"),
	}}
	require.NoError(t, s.Save(ctx, core.TableNR35, tbl))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{core.TableNR35}, names)
}

func TestSaveLegacyRejected(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "antigo.xls"), nil)
	err := s.Save(context.Background(), core.TableNR35, core.NewTable(core.TableNR35, nil))
	require.ErrorIs(t, err, store.ErrReadOnly)
}
