package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Janela fixa: INCR e, no primeiro acesso, EXPIREAT no fim da janela
var windowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('EXPIREAT', KEYS[1], tonumber(ARGV[1]))
	end
	return count
`)

// RedisLimiter implementa rate limiting compartilhado entre réplicas usando Redis
type RedisLimiter struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisLimiter cria um novo limitador baseado em Redis
func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("restaurante-api.ratelimit"),
	}
}

// Allow verifica se a requisição é permitida dentro do limite de taxa.
// Em caso de falha no Redis a requisição é liberada e o erro retornado.
func (r *RedisLimiter) Allow(ctx context.Context, cfg LimitConfig) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "RedisLimiter.Allow",
		trace.WithAttributes(
			attribute.String("ratelimit.key", cfg.Key),
			attribute.Int("ratelimit.limit", cfg.Limit),
			attribute.Int64("ratelimit.period_ms", cfg.Period.Milliseconds()),
		),
	)
	defer span.End()

	if cfg.Limit <= 0 {
		span.SetStatus(codes.Error, "invalid limit")
		return Result{Allowed: true}, errors.New("limite deve ser maior que zero")
	}
	if cfg.Period < time.Second {
		span.SetStatus(codes.Error, "invalid period")
		return Result{Allowed: true}, errors.New("período deve ser de ao menos um segundo")
	}

	expireAt, resetAfter := windowFor(time.Now(), cfg.Period)
	key := fmt.Sprintf("restaurante:ratelimit:%s:%d", cfg.Key, expireAt.Unix())

	count, err := windowScript.Run(ctx, r.client, []string{key}, expireAt.Unix()).Int()
	if err != nil {
		r.logger.Error("erro ao executar script de rate limit", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "redis script error")
		return Result{Allowed: true, Limit: cfg.Limit, Remaining: cfg.Limit, ResetAfter: resetAfter}, err
	}

	remaining := cfg.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	allowed := count <= burstLimit(cfg)

	span.SetAttributes(
		attribute.Int("ratelimit.count", count),
		attribute.Bool("ratelimit.allowed", allowed),
	)
	if !allowed {
		span.SetStatus(codes.Error, "rate limit exceeded")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return Result{
		Allowed:    allowed,
		Limit:      cfg.Limit,
		Remaining:  remaining,
		ResetAfter: resetAfter,
	}, nil
}
