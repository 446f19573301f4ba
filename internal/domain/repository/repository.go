package repository

import (
	"context"
	"errors"

	"github.com/diillson/restaurante-api/internal/domain/model"
)

// Erros que os adaptadores de persistência devolvem no lugar dos erros do driver
var (
	ErrNotFound   = errors.New("registro não encontrado")
	ErrDuplicate  = errors.New("registro duplicado")
	ErrReferenced = errors.New("registro referenciado por outros registros")
)

type ProductRepository interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error

	// IsReferenced informa se algum item de pedido usa o produto
	IsReferenced(ctx context.Context, id int64) (bool, error)
}

type TableStatusRepository interface {
	List(ctx context.Context) ([]model.TableStatus, error)
	GetByID(ctx context.Context, id int64) (*model.TableStatus, error)
	Create(ctx context.Context, status *model.TableStatus) error
}

type TableRepository interface {
	List(ctx context.Context) ([]model.Table, error)
	GetByID(ctx context.Context, id int64) (*model.Table, error)
	Create(ctx context.Context, table *model.Table) error
	Update(ctx context.Context, table *model.Table) error
	Delete(ctx context.Context, id int64) error
	HasOrders(ctx context.Context, id int64) (bool, error)
}

type ClientRepository interface {
	List(ctx context.Context, filter model.ClientFilter) ([]model.Client, error)
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id int64) error

	// HasDependents informa se o cliente possui pedidos ou mesas vinculadas
	HasDependents(ctx context.Context, id int64) (bool, error)
}

// OrderRepository persiste o cabeçalho do pedido. Leituras trazem itens (com
// produto) e pagamento.
type OrderRepository interface {
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	FindOpenByTable(ctx context.Context, mesaID int64) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id int64) error
}

type OrderItemRepository interface {
	List(ctx context.Context) ([]model.OrderItem, error)
	GetByID(ctx context.Context, id int64) (*model.OrderItem, error)
	Create(ctx context.Context, items ...*model.OrderItem) error
	Update(ctx context.Context, item *model.OrderItem) error
	Delete(ctx context.Context, ids ...int64) error
	DeleteByOrder(ctx context.Context, orderID int64) error
}

type PaymentRepository interface {
	List(ctx context.Context) ([]model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
	Create(ctx context.Context, payment *model.Payment) error
}

type PaymentTypeRepository interface {
	List(ctx context.Context) ([]model.PaymentType, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

// ReportRepository executa as consultas agregadas dos relatórios
type ReportRepository interface {
	SalesByProduct(ctx context.Context) ([]model.ProductSales, error)
	RevenueByMethod(ctx context.Context) ([]model.RevenueByMethod, error)
}

// Store agrupa os repositórios sobre uma mesma conexão ou transação
type Store interface {
	Products() ProductRepository
	TableStatuses() TableStatusRepository
	Tables() TableRepository
	Clients() ClientRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Payments() PaymentRepository
	PaymentTypes() PaymentTypeRepository
	Users() UserRepository

	// WithinTransaction executa fn numa transação: commit se fn retornar nil,
	// rollback em erro ou panic.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
