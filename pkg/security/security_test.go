package security_test

import (
	"strings"
	"testing"
	"time"

	"github.com/diillson/restaurante-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "segredo-de-teste-com-mais-de-32-bytes!!"

func TestKeyManager_RoundTrip(t *testing.T) {
	km, err := security.NewKeyManager([]byte(testSecret), 30*time.Minute, zaptest.NewLogger(t))
	require.NoError(t, err)

	token, err := km.GenerateToken("alice")
	require.NoError(t, err)

	claims, err := km.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestKeyManager_RejectsExpiredToken(t *testing.T) {
	km, err := security.NewKeyManager([]byte(testSecret), time.Minute, zaptest.NewLogger(t))
	require.NoError(t, err)

	token, err := km.GenerateTokenWithDuration("alice", -time.Minute)
	require.NoError(t, err)

	_, err = km.VerifyToken(token)
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

func TestKeyManager_RejectsTamperedToken(t *testing.T) {
	logger := zaptest.NewLogger(t)
	km, err := security.NewKeyManager([]byte(testSecret), time.Minute, logger)
	require.NoError(t, err)

	token, err := km.GenerateToken("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = km.VerifyToken(tampered)
	assert.ErrorIs(t, err, security.ErrTokenInvalid)

	other, err := security.NewKeyManager([]byte(testSecret+"-outra"), time.Minute, logger)
	require.NoError(t, err)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, security.ErrTokenInvalid)
}

func TestNewKeyManager_ShortSecret(t *testing.T) {
	_, err := security.NewKeyManager([]byte("curta"), time.Minute, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := security.HashPassword("s3nha")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha", hash)

	assert.True(t, security.CheckPassword(hash, "s3nha"))
	assert.False(t, security.CheckPassword(hash, "errada"))
}
