package service

import (
	"time"

	"github.com/diillson/restaurante-api/internal/app/auth"
	"github.com/diillson/restaurante-api/internal/app/client"
	"github.com/diillson/restaurante-api/internal/app/order"
	"github.com/diillson/restaurante-api/internal/app/payment"
	"github.com/diillson/restaurante-api/internal/app/product"
	"github.com/diillson/restaurante-api/internal/app/report"
	"github.com/diillson/restaurante-api/internal/app/table"
	"github.com/diillson/restaurante-api/internal/app/user"
	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/diillson/restaurante-api/internal/infra/metrics"
	"github.com/diillson/restaurante-api/pkg/cache"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/security"
	"go.uber.org/zap"
)

// Services contém todos os serviços da aplicação
type Services struct {
	AuthService    *auth.AuthService
	UserService    *user.Service
	ProductService *product.Service
	TableService   *table.Service
	ClientService  *client.Service
	OrderService   *order.Service
	PaymentService *payment.Service
	ReportService  *report.Service
}

// Dependencies são os adaptadores de infraestrutura usados pelos serviços
type Dependencies struct {
	Store     repository.Store
	Reports   repository.ReportRepository
	Cache     cache.Cache
	Publisher event.Publisher
	Metrics   *metrics.APIMetrics
}

// NewServices cria todos os serviços necessários
func NewServices(cfg *config.Config, deps Dependencies, logger *zap.Logger) (*Services, error) {
	// Criar gerenciador de chaves
	expiration := cfg.Auth.TokenExpiration
	if expiration <= 0 {
		expiration = 30 * time.Minute
	}
	keyManager, err := security.NewKeyManager(security.GetJWTSecret(cfg, logger), expiration, logger)
	if err != nil {
		return nil, err
	}

	ttl := cfg.Cache.TTL

	return &Services{
		AuthService:    auth.NewAuthService(keyManager, deps.Store.Users(), deps.Metrics, logger),
		UserService:    user.NewService(deps.Store, cfg.Auth.PasswordMinLen, logger),
		ProductService: product.NewService(deps.Store, logger),
		TableService:   table.NewService(deps.Store, deps.Cache, ttl, logger),
		ClientService:  client.NewService(deps.Store, logger),
		OrderService:   order.NewService(deps.Store, deps.Publisher, deps.Metrics, logger),
		PaymentService: payment.NewService(deps.Store, deps.Cache, ttl, deps.Publisher, deps.Metrics, logger),
		ReportService:  report.NewService(deps.Reports, logger),
	}, nil
}
