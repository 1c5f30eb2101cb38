package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconcileFixture() *Table {
	tbl := NewTable(TableNR35, []string{ColNome, ColSetor, ColObservacao})
	tbl.Rows = []Row{
		{ColNome: TextCell("A"), ColSetor: TextCell("X"), ColObservacao: TextCell("")},
		{ColNome: TextCell("B"), ColSetor: TextCell("Y"), ColObservacao: TextCell("")},
		{ColNome: TextCell("C"), ColSetor: TextCell("X"), ColObservacao: TextCell("")},
	}
	return tbl
}

func TestReconcileFullViewEditReplaces(t *testing.T) {
	full := reconcileFixture()

	edited := NewTable(TableNR35, full.Columns)
	edited.Rows = []Row{
		{ColNome: TextCell("Z"), ColSetor: TextCell("W"), ColObservacao: TextCell("novo")},
	}

	out, err := Reconcile(full, FilterSpec{}, edited)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Z", out.Rows[0].Text(ColNome))
}

func TestReconcileFilteredViewUpdate(t *testing.T) {
	full := reconcileFixture()
	filter := FilterSpec{Setores: []string{"X"}}

	// user edited A's observação; B was never in the view
	edited := ApplyFilter(full, filter).Clone()
	edited.Rows[0][ColObservacao] = TextCell("atualizado")

	out, err := Reconcile(full, filter, edited)
	require.NoError(t, err)
	require.Len(t, out.Rows, 3)

	assert.Equal(t, "atualizado", out.Rows[0].Text(ColObservacao))
	assert.Equal(t, "B", out.Rows[1].Text(ColNome))
	assert.Equal(t, "", out.Rows[1].Text(ColObservacao)) // untouched
	assert.Equal(t, "C", out.Rows[2].Text(ColNome))
}

func TestReconcileFilteredViewDeletion(t *testing.T) {
	full := reconcileFixture()
	filter := FilterSpec{Setores: []string{"X"}}

	// user removed C from the view; B stays because the filter hid it
	edited := NewTable(TableNR35, full.Columns)
	edited.Rows = []Row{full.Rows[0].Clone()}

	out, err := Reconcile(full, filter, edited)
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "A", out.Rows[0].Text(ColNome))
	assert.Equal(t, "B", out.Rows[1].Text(ColNome))
}

func TestReconcileFilteredViewAddition(t *testing.T) {
	full := reconcileFixture()
	filter := FilterSpec{Setores: []string{"X"}}

	edited := ApplyFilter(full, filter).Clone()
	edited.Rows = append(edited.Rows, Row{
		ColNome:  TextCell("D"),
		ColSetor: TextCell("X"),
	})

	out, err := Reconcile(full, filter, edited)
	require.NoError(t, err)
	require.Len(t, out.Rows, 4)
	assert.Equal(t, "D", out.Rows[3].Text(ColNome))
}

func TestReconcileDuplicateNameBlocks(t *testing.T) {
	full := reconcileFixture()
	filter := FilterSpec{Setores: []string{"X"}}

	edited := ApplyFilter(full, filter).Clone()
	edited.Rows = append(edited.Rows, edited.Rows[0].Clone())

	out, err := Reconcile(full, filter, edited)
	assert.Nil(t, out)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, dup.Names, "A")
}

func TestReconcileAdditionCollidingWithHiddenRow(t *testing.T) {
	full := reconcileFixture()
	filter := FilterSpec{Setores: []string{"X"}}

	// "B" exists outside the view; adding another "B" must not slip through
	edited := ApplyFilter(full, filter).Clone()
	edited.Rows = append(edited.Rows, Row{
		ColNome:  TextCell("B"),
		ColSetor: TextCell("X"),
	})

	out, err := Reconcile(full, filter, edited)
	assert.Nil(t, out)

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, dup.Names, "B")
}

func TestReconcileDuplicateInFullBlocks(t *testing.T) {
	full := reconcileFixture()
	full.Rows = append(full.Rows, full.Rows[0].Clone())
	filter := FilterSpec{Setores: []string{"X"}}

	edited := NewTable(TableNR35, full.Columns)

	_, err := Reconcile(full, filter, edited)
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
}
