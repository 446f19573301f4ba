package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Situações de pedido conhecidas; o campo aceita texto livre
const (
	OrderStatusOpen    = "aberto"
	OrderStatusPending = "Pendente"
	OrderStatusClosed  = "fechado"

	MaxOrderStatusLen = 20
)

// Order é um pedido: itens faturados para uma mesa e um cliente
type Order struct {
	ID         int64       `gorm:"column:idpedido;primaryKey;autoIncrement" json:"idpedido"`
	ClienteID  int64       `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	MesaID     int64       `gorm:"column:mesa_id;not null;index" json:"mesa_id"`
	DataPedido time.Time   `gorm:"column:data_pedido;autoCreateTime" json:"data_pedido"`
	Status     string      `gorm:"column:status;size:20;not null" json:"status"`
	Cliente    *Client     `gorm:"foreignKey:ClienteID" json:"-"`
	Mesa       *Table      `gorm:"foreignKey:MesaID" json:"-"`
	Itens      []OrderItem `gorm:"foreignKey:PedidoID" json:"itens"`
	Pagamento  *Payment    `gorm:"foreignKey:PedidoID" json:"pagamento,omitempty"`

	// Total é calculado a partir dos itens, não é persistido
	Total decimal.Decimal `gorm:"-" json:"total"`
}

func (Order) TableName() string {
	return "pedidos"
}

// ComputeTotals preenche o subtotal de cada item e o total do pedido
func (o *Order) ComputeTotals() {
	total := decimal.Zero
	for i := range o.Itens {
		o.Itens[i].ComputeSubtotal()
		total = total.Add(o.Itens[i].Subtotal)
	}
	o.Total = total
}

// OrderItem é uma linha do pedido. PrecoUnitario é copiado do produto na criação
// do item e nunca recalculado.
type OrderItem struct {
	ID            int64           `gorm:"column:idpedido_produto;primaryKey;autoIncrement" json:"idpedido_produto"`
	PedidoID      int64           `gorm:"column:pedido_id;not null;index" json:"pedido_id"`
	ProdutoID     int64           `gorm:"column:produto_id;not null;index" json:"produto_id"`
	Quantidade    int             `gorm:"column:quantidade;not null" json:"quantidade"`
	PrecoUnitario decimal.Decimal `gorm:"column:preco_unitario;type:numeric(10,2);not null" json:"preco_unitario"`
	Pedido        *Order          `gorm:"foreignKey:PedidoID" json:"-"`
	Produto       *Product        `gorm:"foreignKey:ProdutoID" json:"produto,omitempty"`
	DataCriacao   time.Time       `gorm:"column:data_criacao;autoCreateTime" json:"data_criacao"`
	DataAlteracao time.Time       `gorm:"column:data_alteracao;autoUpdateTime" json:"data_alteracao"`

	Subtotal decimal.Decimal `gorm:"-" json:"subtotal"`
}

func (OrderItem) TableName() string {
	return "pedido_produtos"
}

func (i *OrderItem) ComputeSubtotal() {
	i.Subtotal = i.PrecoUnitario.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// OrderItemInput é um item no corpo de criação de pedido
type OrderItemInput struct {
	ProdutoID  int64 `json:"produto_id" binding:"required"`
	Quantidade int   `json:"quantidade" binding:"required"`
}

// OrderCreate é o corpo de POST /pedidos (pedido completo com itens)
type OrderCreate struct {
	ClienteID int64            `json:"cliente_id" binding:"required"`
	MesaID    int64            `json:"mesa_id" binding:"required"`
	Status    *string          `json:"status"`
	Itens     []OrderItemInput `json:"itens" binding:"dive"`
}

// OrderOpen é o corpo de POST /pedidos/mesa/:id (pedido vazio em aberto)
type OrderOpen struct {
	ClienteID int64 `json:"cliente_id" binding:"required"`
}

// OrderItemUpdate é um item no corpo de PUT /pedidos/:id. Sem ID o item é novo;
// com ID apenas os campos presentes são aplicados ao item existente.
type OrderItemUpdate struct {
	ID         *int64 `json:"idpedido_produto"`
	ProdutoID  *int64 `json:"produto_id"`
	Quantidade *int   `json:"quantidade"`
}

// OrderUpdate é o corpo de PUT /pedidos/:id. Itens nil mantém os itens atuais;
// uma lista (mesmo vazia) é reconciliada com os itens persistidos.
type OrderUpdate struct {
	ClienteID *int64            `json:"cliente_id"`
	MesaID    *int64            `json:"mesa_id"`
	Status    *string           `json:"status"`
	Itens     []OrderItemUpdate `json:"itens"`
}

// ApplyHeader aplica os campos de cabeçalho presentes
func (u OrderUpdate) ApplyHeader(order *Order) {
	if u.ClienteID != nil {
		order.ClienteID = *u.ClienteID
	}
	if u.MesaID != nil {
		order.MesaID = *u.MesaID
	}
	if u.Status != nil {
		order.Status = *u.Status
	}
}

// OrderItemCreate é o corpo de POST /pedido_produtos
type OrderItemCreate struct {
	PedidoID   int64 `json:"pedido_id" binding:"required"`
	ProdutoID  int64 `json:"produto_id" binding:"required"`
	Quantidade int   `json:"quantidade" binding:"required"`
}

// OrderItemQuantity é o corpo de PUT /pedido_produtos/:id
type OrderItemQuantity struct {
	Quantidade int `json:"quantidade"`
}

// OrderFilter são os filtros de GET /pedidos
type OrderFilter struct {
	Status    string `form:"status"`
	MesaID    int64  `form:"mesa_id"`
	ClienteID int64  `form:"cliente_id"`
}
