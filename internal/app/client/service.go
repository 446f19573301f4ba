package client

import (
	"context"
	"errors"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"go.uber.org/zap"
)

const resource = "Cliente"

type Service struct {
	store  repository.Store
	logger *zap.Logger
}

func NewService(store repository.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List filtra por substring (sem diferenciar maiúsculas) e por status; sem
// status, apenas clientes ativos são listados.
func (s *Service) List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error) {
	if !model.ValidStatusFilter(filter.Status) {
		return nil, apperrors.Validation("Status inválido. Use 'ativos', 'inativos' ou 'todos'", nil)
	}
	clients, err := s.store.Clients().List(ctx, filter)
	return clients, common.MapError(err, resource)
}

// Get retorna o cliente mesmo quando inativo
func (s *Service) Get(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.store.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, resource)
	}
	return client, nil
}

func (s *Service) Create(ctx context.Context, req model.ClientCreate) (*model.Client, error) {
	client := req.ToClient()
	if client.Nome == "" {
		return nil, apperrors.Validation("O nome do cliente é obrigatório", nil)
	}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		return tx.Clients().Create(ctx, client)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.logger.Info("Cliente criado", zap.Int64("id", client.ID))
	return client, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch model.ClientPatch) (*model.Client, error) {
	var client *model.Client

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var err error
		client, err = tx.Clients().GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(client)
		if client.Nome == "" {
			return apperrors.Validation("O nome do cliente é obrigatório", nil)
		}
		return tx.Clients().Update(ctx, client)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	return client, nil
}

// Deactivate marca o cliente como inativo; ele some da listagem padrão
func (s *Service) Deactivate(ctx context.Context, id int64) (*model.Client, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id int64) (*model.Client, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id int64, active bool) (*model.Client, error) {
	client, err := s.Update(ctx, id, model.ClientPatch{IsActive: &active})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Status do cliente alterado", zap.Int64("id", id), zap.Bool("is_active", active))
	return client, nil
}

// Delete remove o cliente definitivamente, desde que não haja pedidos ou
// mesas vinculadas a ele
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Clients().GetByID(ctx, id); err != nil {
			return err
		}

		hasDependents, err := tx.Clients().HasDependents(ctx, id)
		if err != nil {
			return err
		}
		if hasDependents {
			return apperrors.Conflict("O cliente possui pedidos ou mesas vinculadas", nil)
		}

		return tx.Clients().Delete(ctx, id)
	})
	if err != nil {
		return common.MapError(err, resource)
	}

	s.logger.Info("Cliente removido", zap.Int64("id", id))
	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.Conflict("Já existe um cliente com este email", err)
	}
	return common.MapError(err, resource)
}
