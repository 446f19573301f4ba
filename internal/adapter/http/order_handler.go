package http

import (
	"net/http"

	"github.com/diillson/restaurante-api/internal/app/order"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler atende /pedidos e /pedido_produtos
type OrderHandler struct {
	orders *order.Service
	logger *zap.Logger
}

func NewOrderHandler(orders *order.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) List(c *gin.Context) {
	var filter model.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	found, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// Create grava o pedido completo com seus itens numa única transação
func (h *OrderHandler) Create(c *gin.Context) {
	var req model.OrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update aplica o cabeçalho e reconcilia os itens enviados com os persistidos
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req model.OrderUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	updated, err := h.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) GetOpenByTable(c *gin.Context) {
	mesaID, err := parseID(c, "mesa_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	found, err := h.orders.GetOpenByTable(c.Request.Context(), mesaID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// OpenForTable abre um pedido vazio para a mesa
func (h *OrderHandler) OpenForTable(c *gin.Context) {
	mesaID, err := parseID(c, "mesa_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req model.OrderOpen
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.orders.OpenForTable(c.Request.Context(), mesaID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.orders.DeleteItem(c.Request.Context(), orderID, itemID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) ListItems(c *gin.Context) {
	items, err := h.orders.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) GetItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	item, err := h.orders.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	var req model.OrderItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	item, err := h.orders.AddItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *OrderHandler) UpdateItemQuantity(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req model.OrderItemQuantity
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	item, err := h.orders.UpdateItemQuantity(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.orders.RemoveItem(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
