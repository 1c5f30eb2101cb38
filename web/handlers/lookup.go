package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/utils"
	"portalsst.com/portalsst/web/common"
)

// LookupEndpoint serves the QR badge and ladder label lookups. Both are
// public routes: the URLs are printed on physical badges and labels and
// must open without a session.
type LookupEndpoint struct {
	store        store.TableStore
	workersTable string
	laddersTable string
	log          *zap.Logger
}

func RegisterLookup(public *gin.RouterGroup, st store.TableStore, workersTable, laddersTable string, log *zap.Logger) {
	ep := &LookupEndpoint{store: st, workersTable: workersTable, laddersTable: laddersTable, log: log}
	public.GET("/workers/:matricula", ep.Worker)
	public.GET("/ladders/:id", ep.Ladder)
}

type TrainingValidityDTO struct {
	NR     string           `json:"nr"`
	Due    *common.DateOnly `json:"due"`
	Status core.Status      `json:"status"`
}

type WorkerProfileDTO struct {
	Matricula string                `json:"matricula"`
	Nome      string                `json:"nome"`
	Unidade   string                `json:"unidade"`
	Setor     string                `json:"setor"`
	FotoURL   string                `json:"fotoUrl"`
	ASODue    *common.DateOnly      `json:"asoDue"`
	ASOStatus core.Status           `json:"asoStatus"`
	Trainings []TrainingValidityDTO `json:"trainings"`
	History   []RowDTO              `json:"history"`
}

type LadderStatusDTO struct {
	ID             string           `json:"id"`
	LastInspection *common.DateOnly `json:"lastInspection"`
	NextDue        *common.DateOnly `json:"nextDue"`
	Approved       bool             `json:"approved"`
	Status         core.Status      `json:"status"`
	FotoURL        string           `json:"fotoUrl"`
	History        []RowDTO         `json:"history"`
}

func dateOnly(t *time.Time) *common.DateOnly {
	if t == nil {
		return nil
	}
	return &common.DateOnly{Time: *t}
}

func (ep *LookupEndpoint) Worker(c *gin.Context) {
	matricula := c.Param("matricula")

	tbl, err := ep.store.Load(c.Request.Context(), ep.workersTable)
	if err != nil {
		ep.log.Error("worker sheet load failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	profile, ok := core.BuildWorkerProfile(tbl, matricula, utils.Today())
	if !ok {
		msg := fmt.Sprintf("Matrícula '%s' não encontrada", matricula)
		c.JSON(http.StatusNotFound, common.NewErrorResponse(msg))
		return
	}

	dto := WorkerProfileDTO{
		Matricula: profile.Matricula,
		Nome:      profile.Nome,
		Unidade:   profile.Unidade,
		Setor:     profile.Setor,
		FotoURL:   profile.FotoURL,
		ASODue:    dateOnly(profile.ASODue),
		ASOStatus: profile.ASOStatus,
		Trainings: utils.Map(profile.Trainings, func(t core.TrainingValidity) TrainingValidityDTO {
			return TrainingValidityDTO{NR: t.NR, Due: dateOnly(t.Due), Status: t.Status}
		}),
		History: utils.Map(profile.History, func(r core.Row) RowDTO { return rowToDTO(r, tbl.Columns) }),
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dto))
}

func (ep *LookupEndpoint) Ladder(c *gin.Context) {
	id := c.Param("id")

	tbl, err := ep.store.Load(c.Request.Context(), ep.laddersTable)
	if err != nil {
		ep.log.Error("ladder sheet load failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, common.NewErrorResponse(err.Error()))
		return
	}

	status, ok := core.BuildLadderStatus(tbl, id, utils.Today())
	if !ok {
		msg := fmt.Sprintf("Escada '%s' não encontrada", id)
		c.JSON(http.StatusNotFound, common.NewErrorResponse(msg))
		return
	}

	dto := LadderStatusDTO{
		ID:             status.ID,
		LastInspection: dateOnly(status.LastInspection),
		NextDue:        dateOnly(status.NextDue),
		Approved:       status.Approved,
		Status:         status.Status,
		FotoURL:        status.FotoURL,
		History:        utils.Map(status.History, func(r core.Row) RowDTO { return rowToDTO(r, tbl.Columns) }),
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(dto))
}
