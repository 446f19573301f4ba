package table_test

import (
	"context"
	"testing"
	"time"

	"github.com/diillson/restaurante-api/internal/app/table"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/mocks"
	"github.com/diillson/restaurante-api/internal/testutils"
	"github.com/diillson/restaurante-api/pkg/cache"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*table.Service, testutils.Fixtures) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	logger := testutils.TestLogger(t)
	memory := cache.NewMemoryCache(time.Minute, time.Minute, nil, logger)
	return table.NewService(db.Store(), memory, time.Minute, logger), fx
}

func TestCreateAndUpdate(t *testing.T) {
	svc, fx := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.TableCreate{Numero: 2, SituacaoID: fx.Table.SituacaoID})
	require.NoError(t, err)
	require.NotNil(t, created.Situacao)
	assert.Equal(t, "Livre", created.Situacao.Descricao)
	assert.Nil(t, created.ClienteID)

	t.Run("duplicate number", func(t *testing.T) {
		_, err := svc.Create(ctx, model.TableCreate{Numero: 2, SituacaoID: fx.Table.SituacaoID})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.Create(ctx, model.TableCreate{Numero: 3, SituacaoID: 999})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("non positive number", func(t *testing.T) {
		_, err := svc.Create(ctx, model.TableCreate{Numero: -1, SituacaoID: fx.Table.SituacaoID})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("assign and clear client", func(t *testing.T) {
		clientID := fx.Client.ID
		updated, err := svc.Update(ctx, created.ID, model.TablePatch{ClienteID: &clientID})
		require.NoError(t, err)
		require.NotNil(t, updated.Cliente)
		assert.Equal(t, "Maria", updated.Cliente.Nome)

		none := int64(0)
		updated, err = svc.Update(ctx, created.ID, model.TablePatch{ClienteID: &none})
		require.NoError(t, err)
		assert.Nil(t, updated.ClienteID)
	})

	t.Run("unknown client", func(t *testing.T) {
		unknown := int64(999)
		_, err := svc.Update(ctx, created.ID, model.TablePatch{ClienteID: &unknown})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("number taken", func(t *testing.T) {
		numero := fx.Table.Numero
		_, err := svc.Update(ctx, created.ID, model.TablePatch{Numero: &numero})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestDelete(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	fx := testutils.SeedFixtures(t, db)
	svc := table.NewService(db.Store(), &cache.NoOpCache{}, time.Minute, testutils.TestLogger(t))
	ctx := context.Background()

	require.NoError(t, db.Store().Orders().Create(ctx, &model.Order{
		ClienteID: fx.Client.ID, MesaID: fx.Table.ID, Status: model.OrderStatusOpen,
	}))
	assert.ErrorIs(t, svc.Delete(ctx, fx.Table.ID), apperrors.ErrConflict)

	free, err := svc.Create(ctx, model.TableCreate{Numero: 10, SituacaoID: fx.Table.SituacaoID})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, free.ID))
	assert.ErrorIs(t, svc.Delete(ctx, free.ID), apperrors.ErrNotFound)
}

func TestListStatuses_Cache(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	mockCache := new(mocks.MockCache)
	svc := table.NewService(db.Store(), mockCache, time.Minute, testutils.TestLogger(t))
	ctx := context.Background()

	t.Run("miss reads the database and fills the cache", func(t *testing.T) {
		mockCache.On("Get", mock.Anything, table.StatusCacheKey, mock.AnythingOfType("*[]model.TableStatus")).
			Return(false, nil).Once()
		mockCache.On("Set", mock.Anything, table.StatusCacheKey, mock.AnythingOfType("[]model.TableStatus"), time.Minute).
			Return(nil).Once()

		statuses, err := svc.ListStatuses(ctx)
		require.NoError(t, err)
		assert.Len(t, statuses, 3)
		mockCache.AssertExpectations(t)
	})

	t.Run("hit is served from the cache", func(t *testing.T) {
		cached := []model.TableStatus{{ID: 1, Descricao: "Do cache"}}
		mockCache.On("Get", mock.Anything, table.StatusCacheKey, mock.AnythingOfType("*[]model.TableStatus")).
			Return(true, nil, func(dest interface{}) {
				*dest.(*[]model.TableStatus) = cached
			}).Once()

		statuses, err := svc.ListStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, cached, statuses)
		mockCache.AssertExpectations(t)
	})

	t.Run("create invalidates", func(t *testing.T) {
		mockCache.On("Delete", mock.Anything, table.StatusCacheKey).Return(nil).Once()

		status, err := svc.CreateStatus(ctx, model.TableStatusCreate{Descricao: "Manutenção"})
		require.NoError(t, err)
		assert.NotZero(t, status.ID)

		_, err = svc.CreateStatus(ctx, model.TableStatusCreate{Descricao: "Manutenção"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		mockCache.AssertExpectations(t)
	})
}

func TestListStatuses_MemoryCache(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.ListStatuses(ctx)
	require.NoError(t, err)
	second, err := svc.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
