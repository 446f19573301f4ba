package app

import (
	"context"
	"fmt"

	"github.com/diillson/restaurante-api/internal/adapter/broker"
	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/internal/adapter/http"
	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/internal/domain/service"
	"github.com/diillson/restaurante-api/internal/infra/metrics"
	"github.com/diillson/restaurante-api/internal/infra/middleware"
	"github.com/diillson/restaurante-api/pkg/cache"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	net2 "net/http"
)

type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *database.Database
	Cache      cache.Cache
	Publisher  event.Publisher
	Services   *service.Services
	Middleware *middleware.Middleware
	Health     *http.HealthChecker
	Registry   *prometheus.Registry
	APIMetrics *metrics.APIMetrics
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(ctx, database.ConfigFrom(cfg.Database), logger)
	if err != nil {
		return nil, err
	}

	var (
		registry   *prometheus.Registry
		apiMetrics *metrics.APIMetrics
	)
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
		apiMetrics = metrics.NewAPIMetrics(registry)
	}

	appCache := cache.NewFromConfig(cfg.Cache, apiMetrics, logger)

	// O limitador de login compartilha o Redis do cache quando disponível
	var limiter ratelimit.Limiter
	if redisCache, ok := appCache.(*cache.RedisCache); ok {
		limiter = ratelimit.NewRedisLimiter(redisCache.Client(), logger)
	}

	reports, err := database.NewReportRepository(db.DB())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao criar repositório de relatórios: %w", err)
	}

	publisher := broker.NewPublisher(cfg.Events, apiMetrics, logger)

	services, err := service.NewServices(cfg, service.Dependencies{
		Store:     db.Store(),
		Reports:   reports,
		Cache:     appCache,
		Publisher: publisher,
		Metrics:   apiMetrics,
	}, logger)
	if err != nil {
		_ = publisher.Close()
		_ = db.Close()
		return nil, err
	}

	middlewares := middleware.NewMiddleware(logger, middleware.Options{
		Validator:      services.AuthService,
		Limiter:        limiter,
		Metrics:        apiMetrics,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ServiceName:    cfg.Tracing.ServiceName,
	})

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      appCache,
		Publisher:  publisher,
		Services:   services,
		Middleware: middlewares,
		Health:     http.NewHealthChecker(db, appCache, logger),
		Registry:   registry,
		APIMetrics: apiMetrics,
	}, nil
}

// Close libera o publicador de eventos e o pool de conexões
func (a *App) Close() error {
	if err := a.Publisher.Close(); err != nil {
		a.Logger.Warn("Erro ao fechar publicador de eventos", zap.Error(err))
	}
	return a.DB.Close()
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	cfg := a.Config
	mw := a.Middleware

	router.Use(mw.Recovery())
	router.Use(mw.RequestID())
	router.Use(mw.IgnoreFavicon())
	router.Use(mw.Logger())
	if cfg.Tracing.Enabled {
		router.Use(mw.Tracing())
	}
	if cfg.Metrics.Enabled {
		router.Use(mw.Metrics())
	}
	if cfg.Features.SecurityHeaders {
		router.Use(mw.SecurityHeaders())
	}
	router.Use(mw.CORS())

	auth := mw.Authenticate

	authHandler := http.NewAuthHandler(a.Services.AuthService, a.Logger)
	userHandler := http.NewUserHandler(a.Services.UserService, a.Logger)
	productHandler := http.NewProductHandler(a.Services.ProductService, a.Logger)
	tableHandler := http.NewTableHandler(a.Services.TableService, a.Logger)
	clientHandler := http.NewClientHandler(a.Services.ClientService, a.Logger)
	orderHandler := http.NewOrderHandler(a.Services.OrderService, a.Logger)
	paymentHandler := http.NewPaymentHandler(a.Services.PaymentService, a.Logger)

	login := []gin.HandlerFunc{authHandler.Login}
	if cfg.Features.RateLimiter && cfg.Auth.LoginRateLimit > 0 {
		login = append([]gin.HandlerFunc{mw.LoginRateLimit(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateLimitTime)}, login...)
	}
	router.POST("/token/login", login...)

	users := router.Group("/users")
	{
		users.POST("", userHandler.Create)
		users.GET("", auth, userHandler.List)
		users.GET("/:id", auth, userHandler.Get)
		users.PATCH("/:id", auth, userHandler.Update)
		users.DELETE("/:id", auth, userHandler.Deactivate)
	}

	produtos := router.Group("/produtos")
	{
		produtos.GET("", productHandler.List)
		produtos.GET("/:id", productHandler.Get)
		produtos.POST("", auth, productHandler.Create)
		produtos.PATCH("/:id", auth, productHandler.Update)
		produtos.DELETE("/:id", auth, productHandler.Delete)
	}

	mesas := router.Group("/mesas")
	{
		mesas.GET("", tableHandler.List)
		mesas.GET("/:id", tableHandler.Get)
		mesas.POST("", tableHandler.Create)
		mesas.PUT("/:id", tableHandler.Update)
		mesas.DELETE("/:id", tableHandler.Delete)
	}
	router.GET("/situacoes_mesas", tableHandler.ListStatuses)
	router.POST("/situacoes_mesas", tableHandler.CreateStatus)

	clientes := router.Group("/clientes")
	{
		clientes.GET("", clientHandler.List)
		clientes.GET("/:id", clientHandler.Get)
		clientes.POST("", clientHandler.Create)
		clientes.PUT("/:id", clientHandler.Update)
		clientes.PATCH("/:id", clientHandler.Deactivate)
		clientes.PATCH("/:id/reativar", clientHandler.Reactivate)
		clientes.DELETE("/:id", clientHandler.Delete)
	}

	pedidos := router.Group("/pedidos")
	{
		pedidos.GET("", orderHandler.List)
		pedidos.POST("", orderHandler.Create)
		pedidos.GET("/mesa/:mesa_id", orderHandler.GetOpenByTable)
		pedidos.POST("/mesa/:mesa_id", orderHandler.OpenForTable)
		pedidos.GET("/:id", orderHandler.Get)
		pedidos.PUT("/:id", orderHandler.Update)
		pedidos.DELETE("/:id", orderHandler.Delete)
		pedidos.DELETE("/:id/itens/:item_id", orderHandler.DeleteItem)
	}

	itens := router.Group("/pedido_produtos")
	{
		itens.GET("", orderHandler.ListItems)
		itens.GET("/:id", orderHandler.GetItem)
		itens.POST("", orderHandler.AddItem)
		itens.PUT("/:id", orderHandler.UpdateItemQuantity)
		itens.DELETE("/:id", orderHandler.RemoveItem)
	}

	pagamentos := router.Group("/pagamentos")
	{
		pagamentos.GET("", paymentHandler.List)
		pagamentos.GET("/:id", paymentHandler.Get)
		pagamentos.POST("", paymentHandler.Register)
	}
	router.GET("/tipos_pagamento", paymentHandler.ListTypes)

	if cfg.Features.Reports {
		reportHandler := http.NewReportHandler(a.Services.ReportService, a.Logger)
		relatorios := router.Group("/relatorios", auth)
		{
			relatorios.GET("/produtos", reportHandler.SalesByProduct)
			relatorios.GET("/faturamento", reportHandler.RevenueByMethod)
		}
	}

	router.GET("/health", a.Health.DetailedHealth)
	router.GET("/health/liveness", a.Health.LivenessCheck)
	router.GET("/health/readiness", a.Health.ReadinessCheck)

	if cfg.Metrics.Enabled && a.Registry != nil {
		path := cfg.Metrics.PrometheusPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(metrics.Handler(a.Registry)))
		a.Logger.Info("Endpoint de métricas Prometheus registrado", zap.String("path", path))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(net2.StatusNotFound, gin.H{"error": "Rota não encontrada", "path": c.Request.URL.Path})
	})
}
