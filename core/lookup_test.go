package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalsst.com/portalsst/utils"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"075835", "75835"},
		{"0075835", "75835"},
		{"75835", "75835"},
		{"  75835  ", "75835"},
		{"000", "0"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeIdentifier(tt.raw), "raw=%q", tt.raw)
	}
}

func TestFindByIdentifier(t *testing.T) {
	tbl := NewTable("TREINAMENTOS", []string{WorkerColMatricula, WorkerColNome})
	tbl.Rows = []Row{
		{WorkerColMatricula: TextCell("75835"), WorkerColNome: TextCell("João")},
		{WorkerColMatricula: TextCell("75836"), WorkerColNome: TextCell("Maria")},
		{WorkerColMatricula: TextCell("0075835"), WorkerColNome: TextCell("João A.")},
	}

	matches := FindByIdentifier(tbl, WorkerColMatricula, "075835")
	require.Len(t, matches, 2)
	assert.Equal(t, "João", matches[0].Text(WorkerColNome))
	assert.Equal(t, "João A.", matches[1].Text(WorkerColNome))

	assert.Empty(t, FindByIdentifier(tbl, WorkerColMatricula, "75834"))
	assert.Empty(t, FindByIdentifier(tbl, WorkerColMatricula, ""))
}

func TestBuildWorkerProfile(t *testing.T) {
	today := utils.MustParseDate("2025-01-20")

	tbl := NewTable("TREINAMENTOS", []string{
		WorkerColMatricula, WorkerColNome, WorkerColUnidade, WorkerColSetor,
		WorkerColASOVenc, WorkerColTreinoVenc, "NR35", "NR10",
	})
	tbl.Rows = []Row{
		{
			WorkerColMatricula:  TextCell("075835"),
			WorkerColNome:       TextCell("João da Silva"),
			WorkerColUnidade:    TextCell("Matriz"),
			WorkerColSetor:      TextCell("Produção"),
			WorkerColASOVenc:    DateCell(utils.Ptr(utils.MustParseDate("2025-06-01"))),
			WorkerColTreinoVenc: DateCell(utils.Ptr(utils.MustParseDate("2024-12-01"))),
			"NR35":              TextCell("Sim"),
		},
		{
			WorkerColMatricula:  TextCell("75835"),
			WorkerColNome:       TextCell("João da Silva"),
			WorkerColASOVenc:    DateCell(utils.Ptr(utils.MustParseDate("2025-06-01"))),
			WorkerColTreinoVenc: DateCell(utils.Ptr(utils.MustParseDate("2025-09-01"))),
			"NR10":              TextCell("sim"),
		},
	}

	p, ok := BuildWorkerProfile(tbl, "75835", today)
	require.True(t, ok)

	assert.Equal(t, "João da Silva", p.Nome)
	assert.Equal(t, StatusOK, p.ASOStatus)
	assert.Len(t, p.History, 2)

	require.Len(t, p.Trainings, 2)
	byNR := map[string]TrainingValidity{}
	for _, tv := range p.Trainings {
		byNR[tv.NR] = tv
	}
	// last "sim" row per NR wins
	assert.Equal(t, StatusExpired, byNR["NR35"].Status)
	assert.Equal(t, StatusOK, byNR["NR10"].Status)

	_, ok = BuildWorkerProfile(tbl, "99999", today)
	assert.False(t, ok)
}

func TestBuildLadderStatus(t *testing.T) {
	today := utils.MustParseDate("2025-01-20")

	tbl := NewTable("ESCADAS", []string{LadderColID, LadderColData, LadderColStatus})
	tbl.Rows = []Row{
		{
			LadderColID:     TextCell("0042"),
			LadderColData:   DateCell(utils.Ptr(utils.MustParseDate("2023-05-10"))),
			LadderColStatus: TextCell("Aprovada"),
		},
		{
			LadderColID:     TextCell("42"),
			LadderColData:   DateCell(utils.Ptr(utils.MustParseDate("2024-11-02"))),
			LadderColStatus: TextCell("Reprovada"),
		},
	}

	ls, ok := BuildLadderStatus(tbl, "42", today)
	require.True(t, ok)

	// most recent inspection wins
	assert.False(t, ls.Approved)
	require.NotNil(t, ls.NextDue)
	assert.Equal(t, utils.MustParseDate("2025-11-02"), *ls.NextDue)
	assert.Equal(t, StatusOK, ls.Status)
	assert.Len(t, ls.History, 2)

	_, ok = BuildLadderStatus(tbl, "7", today)
	assert.False(t, ok)
}

func TestPhotoURL(t *testing.T) {
	assert.Equal(t, "", PhotoURL("  "))
	assert.Equal(t, "https://example.com/a.png", PhotoURL("https://example.com/a.png"))

	direct := PhotoURL("https://1drv.ms/i/s!abc")
	assert.Contains(t, direct, "https://api.onedrive.com/v1.0/shares/u!")
	assert.NotContains(t, direct, "=")
}
