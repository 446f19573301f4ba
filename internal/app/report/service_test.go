package report_test

import (
	"context"
	"testing"

	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/internal/app/report"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	ctx := context.Background()
	store := db.Store()

	repo, err := database.NewReportRepository(db.DB())
	require.NoError(t, err)
	svc := report.NewService(repo, testutils.TestLogger(t))

	empty, err := svc.SalesByProduct(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	order := &model.Order{ClienteID: fx.Client.ID, MesaID: fx.Table.ID, Status: model.OrderStatusOpen}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.OrderItems().Create(ctx,
		&model.OrderItem{PedidoID: order.ID, ProdutoID: fx.Products[0].ID, Quantidade: 2, PrecoUnitario: fx.Products[0].Preco},
		&model.OrderItem{PedidoID: order.ID, ProdutoID: fx.Products[1].ID, Quantidade: 1, PrecoUnitario: fx.Products[1].Preco},
	))
	require.NoError(t, store.Payments().Create(ctx, &model.Payment{
		PedidoID: order.ID, Valor: decimal.RequireFromString("99.30"), MetodoPagamento: "Pix",
	}))

	sales, err := svc.SalesByProduct(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Pizza", sales[0].Descricao)
	assert.Equal(t, int64(2), sales[0].Quantidade)
	assert.Equal(t, "91.80", sales[0].Faturado.StringFixed(2))

	revenue, err := svc.RevenueByMethod(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.Equal(t, int64(1), revenue[0].Pagamentos)
	assert.Equal(t, "99.30", revenue[0].Total.StringFixed(2))
}
