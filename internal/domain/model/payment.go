package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment é o pagamento de um pedido (no máximo um por pedido)
type Payment struct {
	ID              int64           `gorm:"column:idpagamento;primaryKey;autoIncrement" json:"idpagamento"`
	PedidoID        int64           `gorm:"column:pedido_id;not null;uniqueIndex" json:"pedido_id"`
	Valor           decimal.Decimal `gorm:"column:valor;type:numeric(10,2);not null" json:"valor"`
	DataPagamento   time.Time       `gorm:"column:data_pagamento;autoCreateTime" json:"data_pagamento"`
	MetodoPagamento string          `gorm:"column:metodo_pagamento;size:50;not null" json:"metodo_pagamento"`
	Pedido          *Order          `gorm:"foreignKey:PedidoID" json:"-"`
}

func (Payment) TableName() string {
	return "pagamentos"
}

// PaymentCreate é o corpo de POST /pagamentos. Sem valor, usa o total do pedido.
type PaymentCreate struct {
	PedidoID        int64            `json:"pedido_id" binding:"required"`
	Valor           *decimal.Decimal `json:"valor"`
	MetodoPagamento string           `json:"metodo_pagamento" binding:"required"`
}

// PaymentType é uma forma de pagamento aceita (Dinheiro, Pix, ...)
type PaymentType struct {
	ID        int64  `gorm:"column:idtipopagamento;primaryKey;autoIncrement" json:"idtipopagamento"`
	Descricao string `gorm:"column:descricao;size:200" json:"descricao"`
}

func (PaymentType) TableName() string {
	return "tipo_pagamentos"
}
