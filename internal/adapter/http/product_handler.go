package http

import (
	"net/http"

	"github.com/diillson/restaurante-api/internal/app/product"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	products *product.Service
	logger   *zap.Logger
}

func NewProductHandler(products *product.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// List aceita os filtros descricao, categoria e status (ativos, inativos, todos)
func (h *ProductHandler) List(c *gin.Context) {
	var filter model.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	found, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req model.ProductCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch model.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	updated, err := h.products.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
