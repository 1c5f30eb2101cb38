package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"go.uber.org/zap"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
	"portalsst.com/portalsst/web/common"
)

type TablesEndpoint struct {
	store store.TableStore
	log   *zap.Logger
}

func RegisterTables(public, protected *gin.RouterGroup, st store.TableStore, log *zap.Logger) {
	ep := &TablesEndpoint{store: st, log: log}
	public.GET("/tables", ep.List)
	public.GET("/tables/:name", ep.Get)
	public.POST("/tables/:name/search", ep.Search)
	public.GET("/tables/:name/export", ep.Export)
	protected.PUT("/tables/:name", ep.Save)
	protected.POST("/tables/:name/records", ep.AddRecord)
	protected.DELETE("/tables/:name/records/:nome", ep.DeleteRecord)
}

// respondLoadError maps store failures to the API error taxonomy: a
// missing tab is 404 with a closest-name hint, anything else is a
// connectivity failure surfaced as 502.
func (ep *TablesEndpoint) respondLoadError(c *gin.Context, table string, err error) {
	if errors.Is(err, store.ErrTableNotFound) {
		msg := fmt.Sprintf("Aba '%s' não encontrada na planilha", table)
		if names, lerr := ep.store.List(c.Request.Context()); lerr == nil && len(names) > 0 {
			cm := closestmatch.New(names, []int{2, 3})
			if hint := cm.Closest(table); hint != "" {
				msg = fmt.Sprintf("%s. Você quis dizer '%s'?", msg, hint)
			}
		}
		c.JSON(http.StatusNotFound, common.NewErrorResponse(msg))
		return
	}
	ep.log.Error("store load failed", zap.String("table", table), zap.Error(err))
	c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
}

func (ep *TablesEndpoint) List(c *gin.Context) {
	names, err := ep.store.List(c.Request.Context())
	if err != nil {
		ep.log.Error("store list failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(names))
}

func (ep *TablesEndpoint) Get(c *gin.Context) {
	name := c.Param("name")
	tbl, err := ep.store.Load(c.Request.Context(), name)
	if err != nil {
		ep.respondLoadError(c, name, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(tableToDTO(tbl, utils.Today())))
}

func (ep *TablesEndpoint) Search(c *gin.Context) {
	name := c.Param("name")

	var filter FilterDTO
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	tbl, err := ep.store.Load(c.Request.Context(), name)
	if err != nil {
		ep.respondLoadError(c, name, err)
		return
	}

	view := core.ApplyFilter(tbl, filter.toSpec())
	dto := tableToDTO(view, utils.Today())
	c.JSON(http.StatusOK, common.NewSearchResponse(dto, int64(len(view.Rows))))
}

type SaveRequest struct {
	Filter  FilterDTO `json:"filter"`
	Columns []string  `json:"columns" binding:"required"`
	Rows    []RowDTO  `json:"rows"`
}

// Save merges the edited view back into the full table before writing.
// The edited view may come from a filtered grid; persisting it directly
// would drop every row the filter hid.
func (ep *TablesEndpoint) Save(c *gin.Context) {
	name := c.Param("name")

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	full, err := ep.store.Load(c.Request.Context(), name)
	if err != nil {
		ep.respondLoadError(c, name, err)
		return
	}

	edited := rowsToTable(name, req.Columns, req.Rows)

	merged, err := core.Reconcile(full, req.Filter.toSpec(), edited)
	if err != nil {
		var dup *core.DuplicateNameError
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, common.NewErrorResponse(dup.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if err := ep.store.Save(c.Request.Context(), name, merged); err != nil {
		ep.log.Error("store save failed", zap.String("table", name), zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(tableToDTO(merged, utils.Today())))
}

func (ep *TablesEndpoint) Export(c *gin.Context) {
	name := c.Param("name")

	var filter FilterDTO
	filter.Name = c.Query("name")
	filter.Setores = c.QueryArray("setor")

	tbl, err := ep.store.Load(c.Request.Context(), name)
	if err != nil {
		ep.respondLoadError(c, name, err)
		return
	}

	view := core.ApplyFilter(tbl, filter.toSpec())

	var buf bytes.Buffer
	if name == core.TableNR35 {
		err = core.WriteNR35CSV(&buf, view)
	} else {
		err = core.WriteCSV(&buf, view)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	filename := core.ExportFilename(name, utils.Today())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
