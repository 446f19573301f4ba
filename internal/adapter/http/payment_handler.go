package http

import (
	"net/http"

	"github.com/diillson/restaurante-api/internal/app/payment"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments *payment.Service
	logger   *zap.Logger
}

func NewPaymentHandler(payments *payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	found, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// Register grava o pagamento e fecha o pedido
func (h *PaymentHandler) Register(c *gin.Context) {
	var req model.PaymentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	created, err := h.payments.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PaymentHandler) ListTypes(c *gin.Context) {
	types, err := h.payments.ListTypes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, types)
}
