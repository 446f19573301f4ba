package middleware

import (
	"strconv"
	"time"

	"github.com/diillson/restaurante-api/internal/infra/metrics"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/diillson/restaurante-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware gerencia rate limiting
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting
func NewRateLimitMiddleware(limiter ratelimit.Limiter, metrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
	}
}

// IPRateLimit limita requisições por IP dentro de um escopo (ex.: "login")
func (m *RateLimitMiddleware) IPRateLimit(scope string, limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, scope, ratelimit.LimitConfig{
			Key:         scope + ":" + c.ClientIP(),
			Limit:       limit,
			Period:      period,
			BurstFactor: 1.0,
		}, "X-RateLimit")
	}
}

// UserRateLimit limita requisições por usuário (requer autenticação)
func (m *RateLimitMiddleware) UserRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Next() // Se não houver usuário, passa adiante
			return
		}

		m.enforce(c, "user", ratelimit.LimitConfig{
			Key:         "user:" + user.Username,
			Limit:       limit,
			Period:      period,
			BurstFactor: 1.5, // permite até 50% mais em picos
		}, "X-RateLimit-User")
	}
}

func (m *RateLimitMiddleware) enforce(c *gin.Context, scope string, cfg ratelimit.LimitConfig, headerPrefix string) {
	result, err := m.limiter.Allow(c.Request.Context(), cfg)
	if err != nil {
		m.logger.Error("erro ao verificar rate limit", zap.String("scope", scope), zap.Error(err))
		c.Next() // Em caso de erro, permite a requisição
		return
	}

	c.Header(headerPrefix+"-Limit", strconv.Itoa(result.Limit))
	c.Header(headerPrefix+"-Remaining", strconv.Itoa(result.Remaining))
	c.Header(headerPrefix+"-Reset", strconv.FormatInt(time.Now().Add(result.ResetAfter).Unix(), 10))

	if !result.Allowed {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.metrics.RateLimitExceeded(path, c.Request.Method, scope)
		m.logger.Warn("limite de requisições excedido",
			zap.String("scope", scope),
			zap.String("key", cfg.Key),
			zap.Int("limit", result.Limit))

		retryAfter := int(result.ResetAfter.Seconds()) + 1
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		AbortWithError(c, m.logger,
			apperrors.TooManyRequests("", nil).WithDetails(gin.H{"retry_after": retryAfter}))
		return
	}

	c.Next()
}
