package product

import (
	"context"
	"errors"

	"github.com/diillson/restaurante-api/internal/app/common"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"go.uber.org/zap"
)

const resource = "Produto"

// Service implementa o cardápio: listagem filtrada e manutenção de produtos
type Service struct {
	store  repository.Store
	logger *zap.Logger
}

func NewService(store repository.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List aplica os filtros de descrição (substring), categoria e status
func (s *Service) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if !model.ValidStatusFilter(filter.Status) {
		return nil, apperrors.Validation("Status inválido. Use 'ativos', 'inativos' ou 'todos'", nil)
	}
	products, err := s.store.Products().List(ctx, filter)
	return products, common.MapError(err, resource)
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, common.MapError(err, resource)
	}
	return product, nil
}

func (s *Service) Create(ctx context.Context, req model.ProductCreate) (*model.Product, error) {
	product := req.ToProduct()
	if err := validate(product); err != nil {
		return nil, err
	}

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		return tx.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	s.logger.Info("Produto criado", zap.Int64("id", product.ID), zap.String("descricao", product.Descricao))
	return product, nil
}

// Update aplica apenas os campos presentes no patch
func (s *Service) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	var product *model.Product

	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		var err error
		product, err = tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(product)
		if err := validate(product); err != nil {
			return err
		}
		return tx.Products().Update(ctx, product)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	return product, nil
}

// Delete remove o produto. Produtos usados em pedidos não podem ser removidos;
// nesse caso o caminho é desativá-los via Update.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Products().GetByID(ctx, id); err != nil {
			return err
		}

		referenced, err := tx.Products().IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return apperrors.Conflict("Produto em uso", nil)
		}

		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return apperrors.Conflict("Produto em uso", err)
		}
		return common.MapError(err, resource)
	}

	s.logger.Info("Produto removido", zap.Int64("id", id))
	return nil
}

func validate(product *model.Product) error {
	if product.Descricao == "" {
		return apperrors.Validation("A descrição do produto é obrigatória", nil)
	}
	if product.Preco.IsNegative() {
		return apperrors.Validation("O preço não pode ser negativo", nil)
	}
	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.Conflict("Já existe um produto com esta descrição", err)
	}
	return common.MapError(err, resource)
}
