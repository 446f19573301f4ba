package table

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/diillson/restaurante-api/pkg/cache"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"go.uber.org/zap"
)

// StatusCacheKey guarda a lista de situações de mesa, que quase nunca muda
const StatusCacheKey = "situacoes_mesa"

type Service struct {
	store    repository.Store
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewService(store repository.Store, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{store: store, cache: c, cacheTTL: cacheTTL, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]model.Table, error) {
	tables, err := s.store.Tables().List(ctx)
	return tables, common.MapError(err, "Mesa")
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Table, error) {
	table, err := s.store.Tables().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, "Mesa")
	}
	return table, nil
}

func (s *Service) Create(ctx context.Context, req model.TableCreate) (*model.Table, error) {
	table := req.ToTable()

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := checkReferences(ctx, tx, table); err != nil {
			return err
		}
		if err := tx.Tables().Create(ctx, table); err != nil {
			return err
		}

		created, err := tx.Tables().GetByID(ctx, table.ID)
		if err != nil {
			return err
		}
		table = created
		return nil
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.logger.Info("Mesa criada", zap.Int64("id", table.ID), zap.Int("numero", table.Numero))
	return table, nil
}

// Update aplica o patch; id_cliente_fk igual a 0 desvincula o cliente
func (s *Service) Update(ctx context.Context, id int64, patch model.TablePatch) (*model.Table, error) {
	var table *model.Table

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var err error
		table, err = tx.Tables().GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(table)
		if err := checkReferences(ctx, tx, table); err != nil {
			return err
		}
		if err := tx.Tables().Update(ctx, table); err != nil {
			return err
		}

		table, err = tx.Tables().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	return table, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Tables().GetByID(ctx, id); err != nil {
			return err
		}

		hasOrders, err := tx.Tables().HasOrders(ctx, id)
		if err != nil {
			return err
		}
		if hasOrders {
			return apperrors.Conflict("A mesa possui pedidos e não pode ser removida", nil)
		}

		return tx.Tables().Delete(ctx, id)
	})
	if err != nil {
		return common.MapError(err, "Mesa")
	}

	s.logger.Info("Mesa removida", zap.Int64("id", id))
	return nil
}

// ListStatuses retorna as situações de mesa, do cache quando possível
func (s *Service) ListStatuses(ctx context.Context) ([]model.TableStatus, error) {
	var statuses []model.TableStatus

	found, err := s.cache.Get(ctx, StatusCacheKey, &statuses)
	if err != nil {
		s.logger.Warn("Erro ao buscar situações de mesa do cache", zap.Error(err))
	} else if found {
		return statuses, nil
	}

	statuses, err = s.store.TableStatuses().List(ctx)
	if err != nil {
		return nil, common.MapError(err, "Situação de mesa")
	}

	if err := s.cache.Set(ctx, StatusCacheKey, statuses, s.cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar situações de mesa no cache", zap.Error(err))
	}

	return statuses, nil
}

func (s *Service) CreateStatus(ctx context.Context, req model.TableStatusCreate) (*model.TableStatus, error) {
	status := &model.TableStatus{Descricao: strings.TrimSpace(req.Descricao)}
	if status.Descricao == "" {
		return nil, apperrors.Validation("A descrição da situação é obrigatória", nil)
	}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		return tx.TableStatuses().Create(ctx, status)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Situação de mesa já cadastrada", err)
		}
		return nil, common.MapError(err, "Situação de mesa")
	}

	// Invalidar cache de situações
	if err := s.cache.Delete(ctx, StatusCacheKey); err != nil {
		s.logger.Warn("Erro ao invalidar cache de situações de mesa", zap.Error(err))
	}

	return status, nil
}

func checkReferences(ctx context.Context, tx repository.Store, table *model.Table) error {
	if table.Numero <= 0 {
		return apperrors.Validation("O número da mesa deve ser maior que zero", nil)
	}

	if _, err := tx.TableStatuses().GetByID(ctx, table.SituacaoID); err != nil {
		return common.MapError(err, "Situação de mesa")
	}

	if table.ClienteID != nil {
		if _, err := tx.Clients().GetByID(ctx, *table.ClienteID); err != nil {
			return common.MapError(err, "Cliente")
		}
	}
	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.Conflict("Já existe uma mesa com este número", err)
	}
	return common.MapError(err, "Mesa")
}
