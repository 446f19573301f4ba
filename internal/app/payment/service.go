package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/diillson/restaurante-api/internal/infra/metrics"
	"github.com/diillson/restaurante-api/pkg/cache"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"go.uber.org/zap"
)

const (
	resource = "Pagamento"

	// TypesCacheKey guarda a lista de formas de pagamento
	TypesCacheKey = "tipos_pagamento"
)

type Service struct {
	store     repository.Store
	cache     cache.Cache
	cacheTTL  time.Duration
	publisher event.Publisher
	metrics   *metrics.APIMetrics
	logger    *zap.Logger
}

func NewService(store repository.Store, c cache.Cache, cacheTTL time.Duration, publisher event.Publisher, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		store:     store,
		cache:     c,
		cacheTTL:  cacheTTL,
		publisher: publisher,
		metrics:   apiMetrics,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context) ([]model.Payment, error) {
	payments, err := s.store.Payments().List(ctx)
	return payments, common.MapError(err, resource)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Payment, error) {
	payment, err := s.store.Payments().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, resource)
	}
	return payment, nil
}

// ListTypes retorna as formas de pagamento aceitas, do cache quando possível
func (s *Service) ListTypes(ctx context.Context) ([]model.PaymentType, error) {
	var types []model.PaymentType

	found, err := s.cache.Get(ctx, TypesCacheKey, &types)
	if err != nil {
		s.logger.Warn("Erro ao buscar formas de pagamento do cache", zap.Error(err))
	} else if found {
		return types, nil
	}

	types, err = s.store.PaymentTypes().List(ctx)
	if err != nil {
		return nil, common.MapError(err, "Forma de pagamento")
	}

	if err := s.cache.Set(ctx, TypesCacheKey, types, s.cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar formas de pagamento no cache", zap.Error(err))
	}
	return types, nil
}

// Register grava o pagamento do pedido e o fecha na mesma transação. Sem
// valor informado, cobra o total do pedido.
func (s *Service) Register(ctx context.Context, req model.PaymentCreate) (*model.Payment, error) {
	method := strings.TrimSpace(req.MetodoPagamento)
	if method == "" {
		return nil, apperrors.Validation("A forma de pagamento é obrigatória", nil)
	}

	var payment *model.Payment
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().GetByID(ctx, req.PedidoID)
		if err != nil {
			return common.MapError(err, "Pedido")
		}
		if _, err := tx.Payments().GetByOrder(ctx, order.ID); err == nil {
			return apperrors.Conflict("O pedido já possui pagamento registrado", nil)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		amount := order.Total
		if req.Valor != nil {
			amount = *req.Valor
		}
		if !amount.IsPositive() {
			return apperrors.Validation("O valor do pagamento deve ser maior que zero", nil)
		}

		payment = &model.Payment{
			PedidoID:        order.ID,
			Valor:           amount.Round(2),
			MetodoPagamento: method,
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}

		order.Status = model.OrderStatusClosed
		return tx.Orders().Update(ctx, order)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("O pedido já possui pagamento registrado", err)
		}
		return nil, common.MapError(err, resource)
	}

	s.metrics.PaymentRegistered(method, payment.Valor.InexactFloat64())
	s.logger.Info("Pagamento registrado",
		zap.Int64("pedido_id", payment.PedidoID),
		zap.String("metodo", method),
		zap.String("valor", payment.Valor.StringFixed(2)))

	if err := s.publisher.Publish(ctx, event.New(event.PaymentRegistered, payment.PedidoID, payment)); err != nil {
		s.metrics.EventPublishFailed(string(event.PaymentRegistered))
		s.logger.Error("Falha ao publicar evento", zap.String("tipo", string(event.PaymentRegistered)), zap.Error(err))
	}

	return payment, nil
}
