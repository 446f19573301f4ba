package http

import (
	"net/http"

	"github.com/diillson/restaurante-api/internal/app/client"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clients *client.Service
	logger  *zap.Logger
}

func NewClientHandler(clients *client.Service, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, logger: logger}
}

func (h *ClientHandler) List(c *gin.Context) {
	var filter model.ClientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	clients, err := h.clients.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	found, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req model.ClientCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.clients.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch model.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	updated, err := h.clients.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Deactivate responde ao PATCH /clientes/:id
func (h *ClientHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

// Reactivate responde ao PATCH /clientes/:id/reativar
func (h *ClientHandler) Reactivate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *ClientHandler) setActive(c *gin.Context, active bool) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var updated *model.Client
	if active {
		updated, err = h.clients.Reactivate(c.Request.Context(), id)
	} else {
		updated, err = h.clients.Deactivate(c.Request.Context(), id)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
