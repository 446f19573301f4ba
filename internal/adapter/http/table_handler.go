package http

import (
	"net/http"

	"github.com/diillson/restaurante-api/internal/app/table"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TableHandler atende /mesas e /situacoes_mesas
type TableHandler struct {
	tables *table.Service
	logger *zap.Logger
}

func NewTableHandler(tables *table.Service, logger *zap.Logger) *TableHandler {
	return &TableHandler{tables: tables, logger: logger}
}

func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.tables.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	found, err := h.tables.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *TableHandler) Create(c *gin.Context) {
	var req model.TableCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.tables.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TableHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch model.TablePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	updated, err := h.tables.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TableHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.tables.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TableHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.tables.ListStatuses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *TableHandler) CreateStatus(c *gin.Context) {
	var req model.TableStatusCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.tables.CreateStatus(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
