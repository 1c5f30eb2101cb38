package helper

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/utils"
)

func digestTable() *core.Table {
	t := core.NewTable("NR_33", []string{core.ColNome, core.ColSetor, core.ColRealizacao})
	t.Rows = []core.Row{
		{
			core.ColNome:       core.TextCell("Ana"),
			core.ColSetor:      core.TextCell("Manutenção"),
			core.ColRealizacao: core.DateCell(utils.Ptr(utils.MustParseDate("2022-01-10"))),
		},
		{
			core.ColNome:       core.TextCell("Bruno"),
			core.ColSetor:      core.TextCell("Operação"),
			core.ColRealizacao: core.DateCell(utils.Ptr(utils.MustParseDate("2024-05-20"))),
		},
		{
			core.ColNome:  core.TextCell("Carla"),
			core.ColSetor: core.TextCell("Operação"),
		},
	}
	core.ApplyDeadlines(t, core.SchemaFor(t.Name))
	return t
}

func TestBuildDigest(t *testing.T) {
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, utils.BrasiliaTZ)

	d := BuildDigest(digestTable(), today)

	assert.Equal(t, "NR_33", d.Table)
	require.Len(t, d.Expired, 1)
	assert.Equal(t, "Ana", d.Expired[0].Text(core.ColNome))
	require.Len(t, d.Expiring, 1)
	assert.Equal(t, "Bruno", d.Expiring[0].Text(core.ColNome))
	assert.Equal(t, 1, d.Counts[core.StatusNoDate])
}

func TestDigestHasFindings(t *testing.T) {
	clean := &Digest{Tables: []TableDigest{{Table: "NR_33"}}}
	assert.False(t, clean.HasFindings())

	today := time.Date(2026, 5, 10, 0, 0, 0, 0, utils.BrasiliaTZ)
	d := &Digest{Date: today, Tables: []TableDigest{BuildDigest(digestTable(), today)}}
	assert.True(t, d.HasFindings())
}

func TestFormatSlackMessage(t *testing.T) {
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, utils.BrasiliaTZ)
	d := &Digest{Date: today, Tables: []TableDigest{BuildDigest(digestTable(), today)}}

	msg := FormatSlackMessage(d)
	assert.Contains(t, msg, "10/05/2026")
	assert.Contains(t, msg, "NR_33: 1 vencido(s), 1 vencendo em 30 dias")
}

func TestFormatEmailTextSkipsCleanTables(t *testing.T) {
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, utils.BrasiliaTZ)
	d := &Digest{
		Date: today,
		Tables: []TableDigest{
			BuildDigest(digestTable(), today),
			{Table: "NR_12"},
		},
	}

	body := FormatEmailText(d)
	assert.Contains(t, body, "VENCIDO: Ana (Manutenção)")
	assert.Contains(t, body, "VENCENDO: Bruno (Operação)")
	assert.NotContains(t, body, "NR_12")
}

func TestAttachmentCSV(t *testing.T) {
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, utils.BrasiliaTZ)
	tbl := digestTable()
	d := BuildDigest(tbl, today)

	content, err := AttachmentCSV(d, tbl.Columns)
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.HasPrefix(text, "\xEF\xBB\xBF"))
	assert.Contains(t, text, "Ana;Manutenção;10/01/2022")
	assert.NotContains(t, text, "Carla;Operação;;")
}
