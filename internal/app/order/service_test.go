package order_test

import (
	"errors"
	"testing"

	"github.com/diillson/restaurante-api/internal/adapter/broker"
	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/internal/app/order"
	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/mocks"
	"github.com/diillson/restaurante-api/internal/testutils"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type env struct {
	db  *database.Database
	svc *order.Service
	fx  testutils.Fixtures
}

func setup(t *testing.T) env {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	svc := order.NewService(db.Store(), broker.NoopPublisher{}, nil, testutils.TestLogger(t))
	return env{db: db, svc: svc, fx: fx}
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreate_WithItems(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()
	pizza, refri := e.fx.Products[0], e.fx.Products[1]

	created, err := e.svc.Create(ctx, model.OrderCreate{
		ClienteID: e.fx.Client.ID,
		MesaID:    e.fx.Table.ID,
		Itens: []model.OrderItemInput{
			{ProdutoID: pizza.ID, Quantidade: 2},
			{ProdutoID: refri.ID, Quantidade: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, created.Status)
	require.Len(t, created.Itens, 2)
	assert.True(t, created.Itens[0].PrecoUnitario.Equal(pizza.Preco))
	// 2 x 45.90 + 3 x 7.50
	assert.Equal(t, "114.30", created.Total.StringFixed(2))

	t.Run("unknown product rolls back", func(t *testing.T) {
		_, err := e.svc.Create(ctx, model.OrderCreate{
			ClienteID: e.fx.Client.ID,
			MesaID:    e.fx.Table.ID,
			Itens:     []model.OrderItemInput{{ProdutoID: 9999, Quantidade: 1}},
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		orders, err := e.svc.List(ctx, model.OrderFilter{})
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.svc.Create(ctx, model.OrderCreate{ClienteID: e.fx.Client.ID, MesaID: 9999})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		testutils.CheckError(t, err, "Mesa não encontrada")
	})

	t.Run("non positive quantity", func(t *testing.T) {
		_, err := e.svc.Create(ctx, model.OrderCreate{
			ClienteID: e.fx.Client.ID,
			MesaID:    e.fx.Table.ID,
			Itens:     []model.OrderItemInput{{ProdutoID: pizza.ID, Quantidade: 0}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestSecondOpenOrderForTableFails(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	first, err := e.svc.OpenForTable(ctx, e.fx.Table.ID, model.OrderOpen{ClienteID: e.fx.Client.ID})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusOpen, first.Status)
	assert.Empty(t, first.Itens)

	_, err = e.svc.OpenForTable(ctx, e.fx.Table.ID, model.OrderOpen{ClienteID: e.fx.Client.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	testutils.CheckError(t, err, "Já existe um pedido aberto para esta mesa")

	_, err = e.svc.Create(ctx, model.OrderCreate{
		ClienteID: e.fx.Client.ID, MesaID: e.fx.Table.ID, Status: ptr(model.OrderStatusOpen),
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	open, err := e.svc.GetOpenByTable(ctx, e.fx.Table.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, open.ID)

	_, err = e.svc.GetOpenByTable(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = e.svc.OpenForTable(ctx, e.fx.Table.ID, model.OrderOpen{ClienteID: 9999})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdate_Reconciliation(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()
	pizza, refri := e.fx.Products[0], e.fx.Products[1]

	created, err := e.svc.Create(ctx, model.OrderCreate{
		ClienteID: e.fx.Client.ID,
		MesaID:    e.fx.Table.ID,
		Itens: []model.OrderItemInput{
			{ProdutoID: pizza.ID, Quantidade: 1},
			{ProdutoID: refri.ID, Quantidade: 1},
		},
	})
	require.NoError(t, err)
	keepID := created.Itens[0].ID
	droppedID := created.Itens[1].ID

	// O preço atual muda; o item existente mantém o preço antigo
	pizza.Preco = decimal.RequireFromString("50.00")
	require.NoError(t, e.db.Store().Products().Update(ctx, pizza))

	updated, err := e.svc.Update(ctx, created.ID, model.OrderUpdate{
		Status: ptr("Em preparo"),
		Itens: []model.OrderItemUpdate{
			{ID: ptr(keepID), Quantidade: ptr(3)},
			{ProdutoID: ptr(pizza.ID), Quantidade: ptr(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Em preparo", updated.Status)
	require.Len(t, updated.Itens, 2)

	assert.Equal(t, keepID, updated.Itens[0].ID)
	assert.Equal(t, 3, updated.Itens[0].Quantidade)
	assert.Equal(t, "45.90", updated.Itens[0].PrecoUnitario.StringFixed(2))

	assert.NotEqual(t, droppedID, updated.Itens[1].ID)
	assert.Equal(t, "50.00", updated.Itens[1].PrecoUnitario.StringFixed(2))
	assert.Equal(t, "187.70", updated.Total.StringFixed(2))

	_, err = e.svc.GetItem(ctx, droppedID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	t.Run("nil items keep the current list", func(t *testing.T) {
		got, err := e.svc.Update(ctx, created.ID, model.OrderUpdate{Status: ptr(model.OrderStatusOpen)})
		require.NoError(t, err)
		assert.Len(t, got.Itens, 2)
	})

	t.Run("empty list removes every item", func(t *testing.T) {
		other, err := e.svc.Create(ctx, model.OrderCreate{
			ClienteID: e.fx.Client.ID,
			MesaID:    e.fx.Table.ID,
			Itens:     []model.OrderItemInput{{ProdutoID: refri.ID, Quantidade: 2}},
		})
		require.NoError(t, err)

		got, err := e.svc.Update(ctx, other.ID, model.OrderUpdate{Itens: []model.OrderItemUpdate{}})
		require.NoError(t, err)
		assert.Empty(t, got.Itens)
		assert.True(t, got.Total.IsZero())
	})

	t.Run("failure rolls back everything", func(t *testing.T) {
		_, err := e.svc.Update(ctx, created.ID, model.OrderUpdate{
			Status: ptr("fechado"),
			Itens:  []model.OrderItemUpdate{{ProdutoID: ptr(int64(9999)), Quantidade: ptr(1)}},
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		got, err := e.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusOpen, got.Status)
		assert.Len(t, got.Itens, 2)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := e.svc.Update(ctx, created.ID, model.OrderUpdate{
			Itens: []model.OrderItemUpdate{{ID: ptr(keepID), Quantidade: ptr(0)}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = e.svc.Update(ctx, created.ID, model.OrderUpdate{
			Itens: []model.OrderItemUpdate{{ProdutoID: ptr(pizza.ID)}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = e.svc.Update(ctx, created.ID, model.OrderUpdate{
			Itens: []model.OrderItemUpdate{{ID: ptr(int64(9999)), Quantidade: ptr(1)}},
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	_, err = e.svc.Update(ctx, 9999, model.OrderUpdate{Status: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestItems(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()
	pizza := e.fx.Products[0]

	open, err := e.svc.OpenForTable(ctx, e.fx.Table.ID, model.OrderOpen{ClienteID: e.fx.Client.ID})
	require.NoError(t, err)

	item, err := e.svc.AddItem(ctx, model.OrderItemCreate{PedidoID: open.ID, ProdutoID: pizza.ID, Quantidade: 2})
	require.NoError(t, err)
	assert.Equal(t, "91.80", item.Subtotal.StringFixed(2))

	t.Run("quantity must stay positive", func(t *testing.T) {
		for _, q := range []int{0, -1} {
			_, err := e.svc.UpdateItemQuantity(ctx, item.ID, model.OrderItemQuantity{Quantidade: q})
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			testutils.CheckError(t, err, "Use a rota DELETE")
		}

		unchanged, err := e.svc.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, unchanged.Quantidade)
	})

	updated, err := e.svc.UpdateItemQuantity(ctx, item.ID, model.OrderItemQuantity{Quantidade: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantidade)

	t.Run("only open orders accept items", func(t *testing.T) {
		pending, err := e.svc.Create(ctx, model.OrderCreate{ClienteID: e.fx.Client.ID, MesaID: e.fx.Table.ID})
		require.NoError(t, err)

		_, err = e.svc.AddItem(ctx, model.OrderItemCreate{PedidoID: pending.ID, ProdutoID: pizza.ID, Quantidade: 1})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	items, err := e.svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.ErrorIs(t, e.svc.DeleteItem(ctx, open.ID+100, item.ID), apperrors.ErrNotFound)
	require.NoError(t, e.svc.DeleteItem(ctx, open.ID, item.ID))
	assert.ErrorIs(t, e.svc.RemoveItem(ctx, item.ID), apperrors.ErrNotFound)

	second, err := e.svc.AddItem(ctx, model.OrderItemCreate{PedidoID: open.ID, ProdutoID: pizza.ID, Quantidade: 1})
	require.NoError(t, err)
	require.NoError(t, e.svc.RemoveItem(ctx, second.ID))
}

func TestDelete(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	created, err := e.svc.Create(ctx, model.OrderCreate{
		ClienteID: e.fx.Client.ID,
		MesaID:    e.fx.Table.ID,
		Itens:     []model.OrderItemInput{{ProdutoID: e.fx.Products[0].ID, Quantidade: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(ctx, created.ID))
	_, err = e.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	items, err := e.svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, e.svc.Delete(ctx, created.ID), apperrors.ErrNotFound)

	paid, err := e.svc.Create(ctx, model.OrderCreate{ClienteID: e.fx.Client.ID, MesaID: e.fx.Table.ID})
	require.NoError(t, err)
	require.NoError(t, e.db.Store().Payments().Create(ctx, &model.Payment{
		PedidoID: paid.ID, Valor: decimal.NewFromInt(10), MetodoPagamento: "Pix",
	}))
	assert.ErrorIs(t, e.svc.Delete(ctx, paid.ID), apperrors.ErrConflict)
}

func TestEventsArePublishedAfterCommit(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	publisher := new(mocks.MockPublisher)
	svc := order.NewService(db.Store(), publisher, nil, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	publisher.On("Publish", mock.Anything, mocks.EventOfType(event.OrderCreated)).
		Return(errors.New("broker indisponível")).Once()

	created, err := svc.OpenForTable(ctx, fx.Table.ID, model.OrderOpen{ClienteID: fx.Client.ID})
	require.NoError(t, err, "falha de publicação não desfaz o pedido")

	publisher.On("Publish", mock.Anything, mocks.EventOfType(event.OrderDeleted)).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, created.ID))

	// operações que falham não publicam nada
	_, err = svc.OpenForTable(ctx, 9999, model.OrderOpen{ClienteID: fx.Client.ID})
	require.Error(t, err)

	publisher.AssertExpectations(t)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}
