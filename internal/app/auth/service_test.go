package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/diillson/restaurante-api/internal/app/auth"
	"github.com/diillson/restaurante-api/internal/app/user"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/internal/testutils"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/diillson/restaurante-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("segredo-de-teste-com-32-bytes-ok!")

func setup(t *testing.T) (*auth.AuthService, *user.Service, *security.KeyManager) {
	db := testutils.NewTestDatabase(t)
	logger := testutils.TestLogger(t)

	km, err := security.NewKeyManager(testSecret, time.Minute, logger)
	require.NoError(t, err)

	users := user.NewService(db.Store(), 6, logger)
	return auth.NewAuthService(km, db.Store().Users(), nil, logger), users, km
}

func TestLoginAndValidate(t *testing.T) {
	svc, users, km := setup(t)
	ctx := context.Background()

	alice, err := users.Create(ctx, model.UserCreate{Username: "alice", Password: "segredo123"})
	require.NoError(t, err)
	assert.Nil(t, alice.LastLogin)

	token, err := svc.Login(ctx, "alice", "segredo123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", resolved.Username)
	assert.NotNil(t, resolved.LastLogin)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "errada")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Contains(t, err.Error(), "Senha ou usuário incorretos")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob", "segredo123")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, token+"x")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := km.GenerateTokenWithDuration("alice", -time.Minute)
		require.NoError(t, err)
		_, err = svc.ValidateToken(ctx, expired)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown subject", func(t *testing.T) {
		ghost, err := km.GenerateToken("fantasma")
		require.NoError(t, err)
		_, err = svc.ValidateToken(ctx, ghost)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("inactive user", func(t *testing.T) {
		require.NoError(t, users.Deactivate(ctx, alice.ID))

		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		_, err = svc.Login(ctx, "alice", "segredo123")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
