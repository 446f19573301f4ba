package middleware

import (
	"net/http"

	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AbortWithError interrompe a requisição escrevendo o erro como
// {"error": ..., "details": ...} com o status do APIError. Com logger, erros
// 5xx são registrados.
func AbortWithError(c *gin.Context, logger *zap.Logger, err error) {
	apiErr := apperrors.FromError(err)
	_ = c.Error(err)

	if logger != nil && apiErr.Code >= http.StatusInternalServerError {
		logger.Error("Erro ao processar requisição",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}
	if apiErr.Code == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}

	c.AbortWithStatusJSON(apiErr.Code, apiErr)
}
