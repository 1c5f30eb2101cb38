package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalsst.com/portalsst/utils"
)

func TestValidateNewRow(t *testing.T) {
	complete := Row{
		ColNome:       TextCell("João"),
		ColUnidade:    TextCell("Matriz"),
		ColSetor:      TextCell("Produção"),
		ColRealizacao: DateCell(utils.Ptr(utils.MustParseDate("2025-01-10"))),
	}
	assert.NoError(t, ValidateNewRow(complete))

	missing := complete.Clone()
	missing[ColSetor] = TextCell("   ")
	delete(missing, ColRealizacao)

	err := ValidateNewRow(missing)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{ColSetor, ColRealizacao}, verr.Missing)
}
