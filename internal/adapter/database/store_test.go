package database_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/domain/repository"
	"github.com/diillson/restaurante-api/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsIdempotent(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, database.Seed(ctx, db.DB()))

	statuses, err := db.Store().TableStatuses().List(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "Livre", statuses[0].Descricao)

	types, err := db.Store().PaymentTypes().List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 4)
}

func TestProductRepository_DuplicateDescription(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	products := db.Store().Products()

	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Suco", Preco: decimal.NewFromInt(8), Status: true}))

	err := products.Create(ctx, &model.Product{Descricao: "Suco", Preco: decimal.NewFromInt(9), Status: true})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.NoError(t, products.Create(ctx, &model.Product{Descricao: "Suco de uva", Preco: decimal.NewFromInt(9), Status: true}))
}

func TestProductRepository_ListFilters(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	products := db.Store().Products()

	bebida := "Bebidas"
	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Água com gás", Preco: decimal.NewFromInt(5), Categoria: &bebida, Status: true}))
	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Água sem gás", Preco: decimal.NewFromInt(4), Categoria: &bebida, Status: false}))
	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Lasanha", Preco: decimal.NewFromInt(40), Status: true}))

	all, err := products.List(ctx, model.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byDesc, err := products.List(ctx, model.ProductFilter{Descricao: "GÁS"})
	require.NoError(t, err)
	assert.Len(t, byDesc, 2)

	active, err := products.List(ctx, model.ProductFilter{Categoria: "bebidas", Status: model.StatusAtivos})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Água com gás", active[0].Descricao)

	inactive, err := products.List(ctx, model.ProductFilter{Status: model.StatusInativos})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)
}

func TestProductRepository_IsReferencedAndDelete(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	ctx := context.Background()
	store := db.Store()

	order := &model.Order{ClienteID: fx.Client.ID, MesaID: fx.Table.ID, Status: model.OrderStatusOpen}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.OrderItems().Create(ctx, &model.OrderItem{
		PedidoID: order.ID, ProdutoID: fx.Products[0].ID, Quantidade: 1, PrecoUnitario: fx.Products[0].Preco,
	}))

	used, err := store.Products().IsReferenced(ctx, fx.Products[0].ID)
	require.NoError(t, err)
	assert.True(t, used)

	err = store.Products().Delete(ctx, fx.Products[0].ID)
	assert.ErrorIs(t, err, repository.ErrReferenced)

	used, err = store.Products().IsReferenced(ctx, fx.Products[1].ID)
	require.NoError(t, err)
	assert.False(t, used)
	assert.NoError(t, store.Products().Delete(ctx, fx.Products[1].ID))

	assert.ErrorIs(t, store.Products().Delete(ctx, 9999), repository.ErrNotFound)
}

func TestOrderRepository_LoadsItemsAndTotals(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	ctx := context.Background()
	store := db.Store()

	order := &model.Order{ClienteID: fx.Client.ID, MesaID: fx.Table.ID, Status: model.OrderStatusOpen}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.OrderItems().Create(ctx,
		&model.OrderItem{PedidoID: order.ID, ProdutoID: fx.Products[0].ID, Quantidade: 2, PrecoUnitario: fx.Products[0].Preco},
		&model.OrderItem{PedidoID: order.ID, ProdutoID: fx.Products[1].ID, Quantidade: 3, PrecoUnitario: fx.Products[1].Preco},
	))

	loaded, err := store.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Itens, 2)
	require.NotNil(t, loaded.Itens[0].Produto)
	assert.Equal(t, "Pizza", loaded.Itens[0].Produto.Descricao)
	assert.True(t, decimal.RequireFromString("114.30").Equal(loaded.Total), "total: %s", loaded.Total)

	open, err := store.Orders().FindOpenByTable(ctx, fx.Table.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, open.ID)

	_, err = store.Orders().FindOpenByTable(ctx, fx.Table.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPaymentRepository_GetByOrder(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	ctx := context.Background()

	order := &model.Order{ClienteID: fx.Client.ID, MesaID: fx.Table.ID, Status: model.OrderStatusOpen}
	require.NoError(t, db.Store().Orders().Create(ctx, order))

	_, err := db.Store().Payments().GetByOrder(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, db.Store().Payments().Create(ctx, &model.Payment{PedidoID: order.ID, Valor: decimal.NewFromInt(10), MetodoPagamento: "Pix"}))

	found, err := db.Store().Payments().GetByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pix", found.MetodoPagamento)
	assert.Equal(t, order.ID, found.PedidoID)
}

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	store := db.Store()

	boom := errors.New("boom")
	err := store.WithinTransaction(ctx, func(tx repository.Store) error {
		if err := tx.Products().Create(ctx, &model.Product{Descricao: "Temporário", Preco: decimal.NewFromInt(1), Status: true}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	products, err := store.Products().List(ctx, model.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_ListIgnoresCaseOfAccentedText(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	products := db.Store().Products()

	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "ÁGUA MINERAL", Preco: decimal.NewFromInt(5), Status: true}))
	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Pão de Açúcar", Preco: decimal.NewFromInt(7), Status: true}))

	for _, q := range []string{"água", "ÁGUA", "Água Mineral", "mineral"} {
		found, err := products.List(ctx, model.ProductFilter{Descricao: q})
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, "ÁGUA MINERAL", found[0].Descricao)
	}

	found, err := products.List(ctx, model.ProductFilter{Descricao: "AÇÚCAR"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pão de Açúcar", found[0].Descricao)
}

func TestProductRepository_ListTreatsWildcardsLiterally(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	products := db.Store().Products()

	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Desconto 10% combo", Preco: decimal.NewFromInt(30), Status: true}))
	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Suco_natural", Preco: decimal.NewFromInt(9), Status: true}))
	require.NoError(t, products.Create(ctx, &model.Product{Descricao: "Suco natural!", Preco: decimal.NewFromInt(9), Status: true}))

	cases := map[string][]string{
		"%":         {"Desconto 10% combo"},
		"10%":       {"Desconto 10% combo"},
		"_":         {"Suco_natural"},
		"suco_":     {"Suco_natural"},
		"natural!":  {"Suco natural!"},
		"sem match": nil,
	}
	for q, want := range cases {
		found, err := products.List(ctx, model.ProductFilter{Descricao: q})
		require.NoError(t, err)

		var got []string
		for _, p := range found {
			got = append(got, p.Descricao)
		}
		assert.Equal(t, want, got, q)
	}
}

func TestClientRepository_ListIgnoresCaseOfAccentedText(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	clients := db.Store().Clients()

	apelido := "Zé"
	cidade := "SÃO PAULO"
	require.NoError(t, clients.Create(ctx, &model.Client{Nome: "José Antônio", Apelido: &apelido, Cidade: &cidade, IsActive: true}))
	require.NoError(t, clients.Create(ctx, &model.Client{Nome: "Maria", IsActive: true}))

	filters := []model.ClientFilter{
		{Nome: "JOSÉ"},
		{Nome: "antônio"},
		{Apelido: "ZÉ"},
		{Cidade: "são paulo"},
	}
	for _, filter := range filters {
		found, err := clients.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "José Antônio", found[0].Nome)
	}
}

func TestClientRepository_NullableEmailAndStatusFilter(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	clients := db.Store().Clients()

	// Dois clientes sem email não colidem no índice único
	require.NoError(t, clients.Create(ctx, &model.Client{Nome: "Ana", IsActive: true}))
	require.NoError(t, clients.Create(ctx, &model.Client{Nome: "Bruno", IsActive: false}))

	active, err := clients.List(ctx, model.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ana", active[0].Nome)

	all, err := clients.List(ctx, model.ClientFilter{Status: model.StatusTodos})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReportRepository(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	ctx := context.Background()
	store := db.Store()

	order := &model.Order{ClienteID: fx.Client.ID, MesaID: fx.Table.ID, Status: model.OrderStatusClosed}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.OrderItems().Create(ctx,
		&model.OrderItem{PedidoID: order.ID, ProdutoID: fx.Products[0].ID, Quantidade: 2, PrecoUnitario: fx.Products[0].Preco},
		&model.OrderItem{PedidoID: order.ID, ProdutoID: fx.Products[1].ID, Quantidade: 1, PrecoUnitario: fx.Products[1].Preco},
	))
	require.NoError(t, store.Payments().Create(ctx, &model.Payment{
		PedidoID: order.ID, Valor: decimal.RequireFromString("99.30"), MetodoPagamento: "Pix",
	}))

	reports, err := database.NewReportRepository(db.DB())
	require.NoError(t, err)

	sales, err := reports.SalesByProduct(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Pizza", sales[0].Descricao)
	assert.Equal(t, int64(2), sales[0].Quantidade)
	assert.True(t, decimal.RequireFromString("91.80").Equal(sales[0].Faturado), "faturado: %s", sales[0].Faturado)

	revenue, err := reports.RevenueByMethod(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.Equal(t, "Pix", revenue[0].MetodoPagamento)
	assert.Equal(t, int64(1), revenue[0].Pagamentos)
	assert.True(t, decimal.RequireFromString("99.30").Equal(revenue[0].Total))
}

func TestMigrationManager_AppliesSQLFiles(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	ctx := context.Background()
	dir := t.TempDir()

	sql := "-- índice de pedidos por mesa\nCREATE INDEX IF NOT EXISTS idx_teste_mesa_status ON pedidos (mesa_id, status);\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20240101000000_indice_pedidos.sql"), []byte(sql), 0o600))

	manager := database.NewMigrationManager(db.DB(), testutils.TestLogger(t), dir)
	require.NoError(t, manager.ApplyMigrations(ctx))
	// Segunda execução não reaplica
	require.NoError(t, manager.ApplyMigrations(ctx))

	var applied int64
	require.NoError(t, db.DB().Model(&database.Migration{}).Count(&applied).Error)
	assert.Equal(t, int64(1), applied)

	created, err := manager.CreateMigration("Nova Tabela")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(created), "_nova_tabela.sql")
	// Arquivo recém-criado só tem comentários e é aplicado sem erro
	require.NoError(t, manager.ApplyMigrations(ctx))
}
