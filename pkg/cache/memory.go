package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória
type MemoryCache struct {
	cache    *cache.Cache
	logger   *zap.Logger
	hits     int64
	misses   int64
	recorder HitRatioRecorder
}

// NewMemoryCache cria uma nova instância de MemoryCache. recorder pode ser nil.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, recorder HitRatioRecorder, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		cache:    cache.New(defaultExpiration, cleanupInterval),
		logger:   logger,
		recorder: recorder,
	}
}

// Set armazena uma cópia serializada do valor, assim alterações posteriores
// no objeto do chamador não vazam para o cache.
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.cache.Set(key, data, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, found := c.cache.Get(key)
	if !found {
		c.record(&c.misses)
		return false, nil
	}
	c.record(&c.hits)

	data, ok := value.([]byte)
	if !ok {
		c.cache.Delete(key)
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar para o destino", zap.String("key", key), zap.Error(err))
		return false, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear remove todos os valores do cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.cache.Flush()
	return nil
}

// Ping verifica se o cache está funcionando
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil // O cache em memória está sempre disponível
}

func (c *MemoryCache) record(counter *int64) {
	atomic.AddInt64(counter, 1)
	if c.recorder == nil {
		return
	}

	hits := atomic.LoadInt64(&c.hits)
	total := hits + atomic.LoadInt64(&c.misses)
	if total > 0 {
		c.recorder.UpdateCacheHitRatio("memory", float64(hits)/float64(total))
	}
}
