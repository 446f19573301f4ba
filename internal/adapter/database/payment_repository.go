package database

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).Order("idpagamento").Find(&payments).Error; err != nil {
		return nil, translateError(err)
	}
	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Where("pedido_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, translateError(err)
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return translateError(r.db.WithContext(ctx).Create(payment).Error)
}

type paymentTypeRepository struct {
	db *gorm.DB
}

func (r *paymentTypeRepository) List(ctx context.Context) ([]model.PaymentType, error) {
	var types []model.PaymentType
	if err := r.db.WithContext(ctx).Order("idtipopagamento").Find(&types).Error; err != nil {
		return nil, translateError(err)
	}
	return types, nil
}
