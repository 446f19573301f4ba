package http

import (
	"strconv"

	"github.com/diillson/restaurante-api/internal/infra/middleware"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError escreve o erro no formato comum a handlers e middlewares
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	middleware.AbortWithError(c, logger, err)
}

// bindError converte falhas de binding do gin em erro 400
func bindError(err error) error {
	return apperrors.BadRequest("Dados inválidos", err).WithDetails(err.Error())
}

// parseID lê um parâmetro de rota inteiro e positivo
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("Identificador inválido: "+name, err)
	}
	return id, nil
}
