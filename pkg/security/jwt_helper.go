package security

import (
	"crypto/rand"
	"os"

	"github.com/diillson/restaurante-api/pkg/config"
	"go.uber.org/zap"
)

// GetJWTSecret obtém o segredo JWT na seguinte ordem:
// 1. Variável de ambiente JWT_SECRET_KEY
// 2. auth.jwtSecret da configuração
// 3. Chave aleatória efêmera (tokens não sobrevivem a reinícios)
func GetJWTSecret(cfg *config.Config, logger *zap.Logger) []byte {
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		return []byte(secret)
	}

	if cfg != nil && cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret)
	}

	logger.Warn("Nenhum segredo JWT configurado; usando chave temporária. Defina JWT_SECRET_KEY ou auth.jwtSecret em produção.")
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		logger.Fatal("falha ao gerar chave JWT temporária", zap.Error(err))
	}
	return key
}
