package database

import (
	"context"
	"fmt"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

const salesByProductQuery = `
SELECT p.idproduto AS produto_id,
       p.descricao AS descricao,
       COALESCE(SUM(pp.quantidade), 0) AS quantidade,
       COALESCE(SUM(pp.quantidade * pp.preco_unitario), 0) AS faturado
  FROM produtos p
  JOIN pedido_produtos pp ON pp.produto_id = p.idproduto
 GROUP BY p.idproduto, p.descricao
 ORDER BY faturado DESC, p.descricao`

const revenueByMethodQuery = `
SELECT metodo_pagamento,
       COUNT(*) AS pagamentos,
       COALESCE(SUM(valor), 0) AS total
  FROM pagamentos
 GROUP BY metodo_pagamento
 ORDER BY total DESC, metodo_pagamento`

// ReportRepository executa consultas agregadas com sqlx sobre o mesmo pool do gorm
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(gdb *gorm.DB) (*ReportRepository, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter conexão para relatórios: %w", err)
	}
	return &ReportRepository{db: sqlx.NewDb(sqlDB, sqlxDriverName(gdb.Dialector.Name()))}, nil
}

// sqlxDriverName traduz o nome do dialeto gorm para o nome que o sqlx usa
// na escolha do tipo de bind.
func sqlxDriverName(dialect string) string {
	switch dialect {
	case "sqlite":
		return "sqlite3"
	case "postgres":
		return "pgx"
	default:
		return dialect
	}
}

func (r *ReportRepository) SalesByProduct(ctx context.Context) ([]model.ProductSales, error) {
	rows := []model.ProductSales{}
	if err := r.db.SelectContext(ctx, &rows, salesByProductQuery); err != nil {
		return nil, fmt.Errorf("relatório de vendas por produto: %w", err)
	}
	for i := range rows {
		rows[i].Faturado = rows[i].Faturado.Round(2)
	}
	return rows, nil
}

func (r *ReportRepository) RevenueByMethod(ctx context.Context) ([]model.RevenueByMethod, error) {
	rows := []model.RevenueByMethod{}
	if err := r.db.SelectContext(ctx, &rows, revenueByMethodQuery); err != nil {
		return nil, fmt.Errorf("relatório de faturamento: %w", err)
	}
	for i := range rows {
		rows[i].Total = rows[i].Total.Round(2)
	}
	return rows, nil
}
