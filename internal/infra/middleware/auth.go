package middleware

import (
	"context"
	"strings"

	"github.com/diillson/restaurante-api/internal/domain/model"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserContextKey é a chave do usuário autenticado no gin.Context
const UserContextKey = "user"

// TokenValidator resolve um bearer token para um usuário ativo
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*model.User, error)
}

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// Authenticate exige um bearer token válido de um usuário ativo
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		AbortWithError(c, m.logger, apperrors.Unauthorized("Não autenticado", nil))
		return
	}

	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
		AbortWithError(c, m.logger, apperrors.Unauthorized("Formato inválido do token", nil))
		return
	}

	user, err := m.validator.ValidateToken(c.Request.Context(), strings.TrimSpace(tokenString))
	if err != nil {
		m.logger.Debug("token rejeitado", zap.String("path", c.Request.URL.Path), zap.Error(err))
		AbortWithError(c, m.logger, err)
		return
	}

	// Armazena o usuário no contexto para uso posterior
	c.Set(UserContextKey, user)
	c.Next()
}

// CurrentUser retorna o usuário autenticado na requisição, se houver
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
