package database

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Descricao != "" {
		query = query.Where(likeCondition("descricao"), likePattern(filter.Descricao))
	}
	if filter.Categoria != "" {
		query = query.Where(likeCondition("categoria"), likePattern(filter.Categoria))
	}
	switch filter.Status {
	case model.StatusAtivos:
		query = query.Where("status = ?", true)
	case model.StatusInativos:
		query = query.Where("status = ?", false)
	}

	var products []model.Product
	if err := query.Order("descricao").Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Product{}, id))
}

func (r *productRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("produto_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}
