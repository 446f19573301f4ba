package middleware

import (
	"net/http"
	"time"

	"github.com/diillson/restaurante-api/internal/infra/metrics"
	"github.com/diillson/restaurante-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDHeader propaga o identificador da requisição
const RequestIDHeader = "X-Request-ID"

// Options reúne as dependências dos middlewares
type Options struct {
	Validator      TokenValidator
	Limiter        ratelimit.Limiter
	Metrics        *metrics.APIMetrics
	AllowedOrigins []string
	ServiceName    string
}

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	authMiddleware      *AuthMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	tracingMiddleware   *TracingMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, opts Options) *Middleware {
	limiter := opts.Limiter
	if limiter == nil {
		logger.Info("Nenhum limitador configurado, usando limitador em memória")
		limiter = ratelimit.NewMemoryLimiter()
	}

	return &Middleware{
		logger:              logger,
		authMiddleware:      NewAuthMiddleware(opts.Validator, logger),
		recoveryMiddleware:  NewRecoveryMiddleware(logger),
		securityMiddleware:  NewSecurityMiddleware(opts.AllowedOrigins, logger),
		tracingMiddleware:   NewTracingMiddleware(opts.ServiceName, logger),
		metricsMiddleware:   NewMetricsMiddleware(opts.Metrics, logger),
		rateLimitMiddleware: NewRateLimitMiddleware(limiter, opts.Metrics, logger),
	}
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	return m.metricsMiddleware.Middleware()
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// IgnoreFavicon é um middleware que ignora requisições para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID reaproveita o X-Request-ID recebido ou gera um novo
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Processar requisição
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		level := zapcore.InfoLevel
		if status >= http.StatusInternalServerError {
			level = zapcore.ErrorLevel
		}
		if ce := m.logger.Check(level, "request completed"); ce != nil {
			ce.Write(fields...)
		}
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}

// LoginRateLimit limita tentativas de login por IP
func (m *Middleware) LoginRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return m.rateLimitMiddleware.IPRateLimit("login", limit, period)
}

// UserRateLimit limita requisições autenticadas por usuário
func (m *Middleware) UserRateLimit(limit int, period time.Duration) gin.HandlerFunc {
	return m.rateLimitMiddleware.UserRateLimit(limit, period)
}
