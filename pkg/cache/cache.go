package cache

import (
	"context"
	"time"

	"github.com/diillson/restaurante-api/pkg/config"
	"go.uber.org/zap"
)

// KeyPrefix isola as chaves da aplicação num Redis compartilhado
const KeyPrefix = "restaurante:"

// Cache define a interface para operações de cache
type Cache interface {
	// Set armazena um valor no cache com tempo de expiração
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get recupera um valor do cache
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Delete remove um valor do cache
	Delete(ctx context.Context, key string) error

	// Clear remove todos os valores do cache
	Clear(ctx context.Context) error

	// Ping verifica se o cache está acessível
	Ping(ctx context.Context) error
}

// HitRatioRecorder recebe a taxa de acerto do cache (implementado pelas métricas)
type HitRatioRecorder interface {
	UpdateCacheHitRatio(cacheType string, ratio float64)
}

// NewFromConfig cria o cache conforme a seção cache da configuração.
// Se o Redis estiver indisponível, cai para o cache em memória.
func NewFromConfig(cfg config.CacheConfig, recorder HitRatioRecorder, logger *zap.Logger) Cache {
	if !cfg.Enabled {
		logger.Info("Cache desabilitado")
		return &NoOpCache{}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if cfg.Type == "redis" {
		redisCache, err := NewRedisCache(cfg.Redis, logger)
		if err == nil {
			logger.Info("Usando cache Redis", zap.String("address", cfg.Redis.Address))
			return redisCache
		}
		logger.Warn("Falha ao conectar ao Redis, usando cache em memória", zap.Error(err))
	}

	logger.Info("Usando cache em memória", zap.Duration("ttl", ttl))
	return NewMemoryCache(ttl, 2*ttl, recorder, logger)
}
