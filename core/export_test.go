package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalsst.com/portalsst/utils"
)

func TestExportFilename(t *testing.T) {
	name := ExportFilename("NR_35", utils.MustParseDate("2025-01-20"))
	assert.Equal(t, "export_NR_35_20250120.csv", name)
}

func TestWriteCSV(t *testing.T) {
	tbl := NewTable("NR_12", []string{ColNome, ColSetor, ColVencimento})
	tbl.Rows = []Row{
		{
			ColNome:       TextCell("Maria; Souza"),
			ColSetor:      TextCell("Produção"),
			ColVencimento: DateCell(utils.Ptr(utils.MustParseDate("2025-03-01"))),
		},
		{
			ColNome:       TextCell("José"),
			ColSetor:      TextCell(""),
			ColVencimento: DateCell(nil),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3], "UTF-8 BOM")

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NOME;SETOR;VENCIMENTO DO TREINAMENTO", lines[0])
	assert.Equal(t, `"Maria; Souza";Produção;01/03/2025`, lines[1])
	assert.Equal(t, "José;;", lines[2])
}

func TestWriteNR35CSV(t *testing.T) {
	tbl := NewTable(TableNR35, []string{ColNome, ColUnidade, ColSetor, ColRealizacao, "EXTRA"})
	tbl.Rows = []Row{
		{
			ColNome:       TextCell("João"),
			ColUnidade:    TextCell("Matriz"),
			ColSetor:      TextCell("Produção"),
			ColRealizacao: DateCell(utils.Ptr(utils.MustParseDate("2023-01-15"))),
			"EXTRA":       TextCell("ignored"),
		},
	}
	ApplyDeadlines(tbl, NR35Schema)

	var buf bytes.Buffer
	require.NoError(t, WriteNR35CSV(&buf, tbl))

	out := string(buf.Bytes()[3:])
	assert.Contains(t, out, "NOME;UNIDADE;SETOR;DATA DE REALIZAÇÃO;VENCIMENTO DO TREINAMENTO")
	assert.Contains(t, out, "João;Matriz;Produção;15/01/2023;15/01/2025")
	assert.NotContains(t, out, "EXTRA")
	assert.NotContains(t, out, "ignored")
}
