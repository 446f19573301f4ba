package http

import (
	"net/http"

	"github.com/diillson/restaurante-api/internal/app/report"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reports *report.Service
	logger  *zap.Logger
}

func NewReportHandler(reports *report.Service, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

func (h *ReportHandler) SalesByProduct(c *gin.Context) {
	rows, err := h.reports.SalesByProduct(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) RevenueByMethod(c *gin.Context) {
	rows, err := h.reports.RevenueByMethod(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
