package database

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tableStatusRepository struct {
	db *gorm.DB
}

func (r *tableStatusRepository) List(ctx context.Context) ([]model.TableStatus, error) {
	var statuses []model.TableStatus
	if err := r.db.WithContext(ctx).Order("id_situacao").Find(&statuses).Error; err != nil {
		return nil, translateError(err)
	}
	return statuses, nil
}

func (r *tableStatusRepository) GetByID(ctx context.Context, id int64) (*model.TableStatus, error) {
	var status model.TableStatus
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &status, nil
}

func (r *tableStatusRepository) Create(ctx context.Context, status *model.TableStatus) error {
	return translateError(r.db.WithContext(ctx).Create(status).Error)
}

type tableRepository struct {
	db *gorm.DB
}

func (r *tableRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Situacao").Preload("Cliente")
}

func (r *tableRepository) List(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	if err := r.withRelations(ctx).Order("numero").Find(&tables).Error; err != nil {
		return nil, translateError(err)
	}
	return tables, nil
}

func (r *tableRepository) GetByID(ctx context.Context, id int64) (*model.Table, error) {
	var table model.Table
	if err := r.withRelations(ctx).First(&table, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &table, nil
}

func (r *tableRepository) Create(ctx context.Context, table *model.Table) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(table).Error)
}

func (r *tableRepository) Update(ctx context.Context, table *model.Table) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(table).Error)
}

func (r *tableRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Table{}, id))
}

func (r *tableRepository) HasOrders(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("mesa_id = ?", id).Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}
