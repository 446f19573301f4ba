package database

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/repository"
	"gorm.io/gorm"
)

var _ repository.Store = (*Store)(nil)

// Store implementa repository.Store sobre um *gorm.DB, que pode ser o pool
// ou uma transação em andamento.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepository{db: s.db}
}

func (s *Store) TableStatuses() repository.TableStatusRepository {
	return &tableStatusRepository{db: s.db}
}

func (s *Store) Tables() repository.TableRepository {
	return &tableRepository{db: s.db}
}

func (s *Store) Clients() repository.ClientRepository {
	return &clientRepository{db: s.db}
}

func (s *Store) Orders() repository.OrderRepository {
	return &orderRepository{db: s.db}
}

func (s *Store) OrderItems() repository.OrderItemRepository {
	return &orderItemRepository{db: s.db}
}

func (s *Store) Payments() repository.PaymentRepository {
	return &paymentRepository{db: s.db}
}

func (s *Store) PaymentTypes() repository.PaymentTypeRepository {
	return &paymentTypeRepository{db: s.db}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{db: s.db}
}

// WithinTransaction abre uma transação no pool (ou um savepoint, se já estiver
// dentro de uma) e a entrega a fn. O gorm faz rollback em erro ou panic.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
