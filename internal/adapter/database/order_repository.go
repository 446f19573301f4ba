package database

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// withDetails carrega itens (em ordem de inclusão, com produto) e pagamento
func (r *orderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB {
			return db.Order("idpedido_produto")
		}).
		Preload("Itens.Produto").
		Preload("Pagamento")
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := r.withDetails(ctx)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MesaID != 0 {
		query = query.Where("mesa_id = ?", filter.MesaID)
	}
	if filter.ClienteID != 0 {
		query = query.Where("cliente_id = ?", filter.ClienteID)
	}

	var orders []model.Order
	if err := query.Order("idpedido").Find(&orders).Error; err != nil {
		return nil, translateError(err)
	}
	for i := range orders {
		orders[i].ComputeTotals()
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	if err := r.withDetails(ctx).First(&order, id).Error; err != nil {
		return nil, translateError(err)
	}
	order.ComputeTotals()
	return &order, nil
}

func (r *orderRepository) FindOpenByTable(ctx context.Context, mesaID int64) (*model.Order, error) {
	var order model.Order
	err := r.withDetails(ctx).
		Where("mesa_id = ? AND status = ?", mesaID, model.OrderStatusOpen).
		Order("idpedido DESC").
		First(&order).Error
	if err != nil {
		return nil, translateError(err)
	}
	order.ComputeTotals()
	return &order, nil
}

// Create grava apenas o cabeçalho; os itens são gravados pelo OrderItemRepository
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Order{}, id))
}

type orderItemRepository struct {
	db *gorm.DB
}

func (r *orderItemRepository) List(ctx context.Context) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if err := r.db.WithContext(ctx).Preload("Produto").Order("idpedido_produto").Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	for i := range items {
		items[i].ComputeSubtotal()
	}
	return items, nil
}

func (r *orderItemRepository) GetByID(ctx context.Context, id int64) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := r.db.WithContext(ctx).Preload("Produto").First(&item, id).Error; err != nil {
		return nil, translateError(err)
	}
	item.ComputeSubtotal()
	return &item, nil
}

func (r *orderItemRepository) Create(ctx context.Context, items ...*model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(items).Error)
}

func (r *orderItemRepository) Update(ctx context.Context, item *model.OrderItem) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

func (r *orderItemRepository) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	return deleteResult(r.db.WithContext(ctx).Delete(&model.OrderItem{}, ids))
}

func (r *orderItemRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	err := r.db.WithContext(ctx).Where("pedido_id = ?", orderID).Delete(&model.OrderItem{}).Error
	return translateError(err)
}
