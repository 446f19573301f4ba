package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RedisCache implementa a interface Cache usando Redis
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisCache conecta ao Redis e verifica a conexão
func NewRedisCache(opts config.RedisOptions, logger *zap.Logger) (*RedisCache, error) {
	client, err := NewRedisClient(opts, logger)
	if err != nil {
		return nil, err
	}
	return NewRedisCacheWithClient(client, logger), nil
}

// NewRedisCacheWithClient usa um cliente já conectado (compartilhado com o rate limiter)
func NewRedisCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("restaurante-api.cache.redis"),
	}
}

// NewRedisClient cria um cliente Redis a partir da configuração e faz ping
func NewRedisClient(opts config.RedisOptions, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Falha ao conectar ao Redis",
			zap.String("addr", opts.Address),
			zap.Error(err))
		_ = client.Close()
		return nil, err
	}

	logger.Info("Conexão com Redis estabelecida com sucesso",
		zap.String("addr", opts.Address),
		zap.Int("db", opts.DB))

	return client, nil
}

// Client expõe o cliente subjacente
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Set armazena um valor no cache
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int64("cache.expiration_ms", expiration.Milliseconds()),
		),
	)
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar para cache", zap.Error(err))
		span.SetStatus(codes.Error, "serialization failure")
		return err
	}
	span.SetAttributes(attribute.Int("cache.data_size_bytes", len(data)))

	if err := c.client.Set(ctx, KeyPrefix+key, data, expiration).Err(); err != nil {
		c.logger.Error("falha ao armazenar no Redis",
			zap.String("key", key),
			zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "redis error")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Get recupera um valor do cache
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)),
	)
	defer span.End()

	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// Cache miss não é erro
			span.SetAttributes(attribute.Bool("cache.hit", false))
			span.SetStatus(codes.Ok, "cache miss")
			return false, nil
		}
		c.logger.Error("falha ao recuperar do cache",
			zap.String("key", key),
			zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "redis error")
		return false, err
	}

	span.SetAttributes(
		attribute.Bool("cache.hit", true),
		attribute.Int("cache.data_size_bytes", len(data)),
	)

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar do cache",
			zap.String("key", key),
			zap.Error(err))
		span.SetStatus(codes.Error, "deserialization failure")
		return false, err
	}

	span.SetStatus(codes.Ok, "cache hit")
	return true, nil
}

// Delete remove um valor do cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Delete",
		trace.WithAttributes(attribute.String("cache.key", key)),
	)
	defer span.End()

	removed, err := c.client.Del(ctx, KeyPrefix+key).Result()
	if err != nil {
		c.logger.Error("falha ao remover do cache",
			zap.String("key", key),
			zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "redis error")
		return err
	}

	span.SetAttributes(attribute.Int64("cache.keys_removed", removed))
	span.SetStatus(codes.Ok, "")
	return nil
}

// Clear remove todas as chaves da aplicação
func (c *RedisCache) Clear(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Clear")
	defer span.End()

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"*", 100).Result()
		if err != nil {
			c.logger.Error("falha ao listar chaves do cache", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "redis error")
			return err
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Error("falha ao remover chaves do cache",
					zap.Int("count", len(keys)),
					zap.Error(err))
				span.RecordError(err)
				span.SetStatus(codes.Error, "redis delete error")
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Ping verifica se o Redis está acessível
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.Error("falha ao fazer ping no Redis", zap.Error(err))
		return err
	}
	return nil
}
