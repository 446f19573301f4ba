package model

import "github.com/shopspring/decimal"

// ProductSales é uma linha do relatório de vendas por produto
type ProductSales struct {
	ProdutoID  int64           `db:"produto_id" json:"produto_id"`
	Descricao  string          `db:"descricao" json:"descricao"`
	Quantidade int64           `db:"quantidade" json:"quantidade"`
	Faturado   decimal.Decimal `db:"faturado" json:"faturado"`
}

// RevenueByMethod é uma linha do relatório de faturamento por forma de pagamento
type RevenueByMethod struct {
	MetodoPagamento string          `db:"metodo_pagamento" json:"metodo_pagamento"`
	Pagamentos      int64           `db:"pagamentos" json:"pagamentos"`
	Total           decimal.Decimal `db:"total" json:"total"`
}
