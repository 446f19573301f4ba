package database

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clientRepository struct {
	db *gorm.DB
}

func (r *clientRepository) List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error) {
	query := r.db.WithContext(ctx).Model(&model.Client{})

	textFilters := []struct {
		column string
		value  string
	}{
		{"nome", filter.Nome},
		{"apelido", filter.Apelido},
		{"cidade", filter.Cidade},
		{"telefone", filter.Telefone},
	}
	for _, f := range textFilters {
		if f.value != "" {
			query = query.Where(likeCondition(f.column), likePattern(f.value))
		}
	}

	switch filter.Status {
	case "", model.StatusAtivos:
		query = query.Where("is_active = ?", true)
	case model.StatusInativos:
		query = query.Where("is_active = ?", false)
	}

	var clients []model.Client
	if err := query.Order("nome").Find(&clients).Error; err != nil {
		return nil, translateError(err)
	}
	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return translateError(r.db.WithContext(ctx).Create(client).Error)
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Client{}, id))
}

func (r *clientRepository) HasDependents(ctx context.Context, id int64) (bool, error) {
	var orders, tables int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Order{}).Where("cliente_id = ?", id).Count(&orders).Error; err != nil {
		return false, translateError(err)
	}
	if err := db.Model(&model.Table{}).Where("id_cliente_fk = ?", id).Count(&tables).Error; err != nil {
		return false, translateError(err)
	}
	return orders+tables > 0, nil
}
