package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrTokenExpired = errors.New("token expirado")
	ErrTokenInvalid = errors.New("token inválido")
)

// Claims carrega o username no subject padrão do JWT
type Claims struct {
	jwt.RegisteredClaims
}

// Username retorna o subject do token
func (c *Claims) Username() string {
	return c.Subject
}

type KeyManager struct {
	secretKey  []byte
	expiration time.Duration
	logger     *zap.Logger
}

func NewKeyManager(secretKey []byte, expiration time.Duration, logger *zap.Logger) (*KeyManager, error) {
	if len(secretKey) < 32 {
		return nil, errors.New("jwt secret key muito curta")
	}
	if expiration <= 0 {
		return nil, errors.New("expiração do token deve ser positiva")
	}

	return &KeyManager{
		secretKey:  secretKey,
		expiration: expiration,
		logger:     logger,
	}, nil
}

// Expiration retorna a validade configurada dos tokens
func (km *KeyManager) Expiration() time.Duration {
	return km.expiration
}

// GenerateToken emite um token HS256 com o username como subject
func (km *KeyManager) GenerateToken(username string) (string, error) {
	return km.GenerateTokenWithDuration(username, km.expiration)
}

func (km *KeyManager) GenerateTokenWithDuration(username string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		km.logger.Debug("falha ao validar token JWT", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
