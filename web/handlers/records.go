package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
	"portalsst.com/portalsst/web/common"
)

type NewRecordDTO struct {
	Nome       string            `json:"nome" binding:"required"`
	Unidade    string            `json:"unidade" binding:"required"`
	Setor      string            `json:"setor" binding:"required"`
	Realizacao common.DateOnly   `json:"realizacao" binding:"required"`
	Extra      map[string]string `json:"extra"`
}

func (dto NewRecordDTO) toRowDTO(columns []string) RowDTO {
	row := RowDTO{
		core.ColNome:       dto.Nome,
		core.ColUnidade:    dto.Unidade,
		core.ColSetor:      dto.Setor,
		core.ColRealizacao: dto.Realizacao.Ptr().Format(store.StoreDateLayout),
	}
	// Extra values only land on columns the table actually has.
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}
	for col, val := range dto.Extra {
		if known[col] {
			row[col] = val
		}
	}
	return row
}

// AddRecord appends one new row to the table. Required fields are enforced
// twice: by binding tags on the DTO and by the domain check, so a row can
// never reach the store half-filled.
func (ep *TablesEndpoint) AddRecord(c *gin.Context) {
	name := c.Param("name")

	var dto NewRecordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	full, err := ep.store.Load(c.Request.Context(), name)
	if err != nil {
		ep.respondLoadError(c, name, err)
		return
	}

	parsed := rowsToTable(name, full.Columns, []RowDTO{dto.toRowDTO(full.Columns)})
	if len(parsed.Rows) != 1 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("registro vazio"))
		return
	}
	row := parsed.Rows[0]

	if err := core.ValidateNewRow(row); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}

	want := utils.Fold(strings.TrimSpace(dto.Nome))
	for _, r := range full.Rows {
		if utils.Fold(strings.TrimSpace(r.Text(core.ColNome))) == want {
			msg := fmt.Sprintf("Já existe um registro para '%s' em %s", dto.Nome, name)
			c.JSON(http.StatusConflict, common.NewErrorResponse(msg))
			return
		}
	}

	merged := full.Clone()
	merged.Rows = append(merged.Rows, row)
	core.ApplyDeadlines(merged, core.SchemaFor(name))

	if err := ep.store.Save(c.Request.Context(), name, merged); err != nil {
		ep.log.Error("store save failed", zap.String("table", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(rowToDTO(row, merged.Columns)))
}

// DeleteRecord removes every row whose NOME matches the path parameter,
// compared accent and case insensitively.
func (ep *TablesEndpoint) DeleteRecord(c *gin.Context) {
	name := c.Param("name")
	nome := c.Param("nome")

	full, err := ep.store.Load(c.Request.Context(), name)
	if err != nil {
		ep.respondLoadError(c, name, err)
		return
	}

	want := utils.Fold(strings.TrimSpace(nome))
	kept := full.Rows[:0]
	removed := 0
	for _, r := range full.Rows {
		if utils.Fold(strings.TrimSpace(r.Text(core.ColNome))) == want {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		msg := fmt.Sprintf("Nenhum registro para '%s' em %s", nome, name)
		c.JSON(http.StatusNotFound, common.NewErrorResponse(msg))
		return
	}
	full.Rows = kept

	if err := ep.store.Save(c.Request.Context(), name, full); err != nil {
		ep.log.Error("store save failed", zap.String("table", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"removed": removed}))
}
