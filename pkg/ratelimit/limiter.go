package ratelimit

import (
	"context"
	"time"
)

// LimitConfig configura o comportamento do limitador
type LimitConfig struct {
	Key         string        // Chave única para identificar o limite
	Limit       int           // Número máximo de requisições
	Period      time.Duration // Período de tempo para o limite
	BurstFactor float64       // Fator para permitir rajadas (1.0 = sem rajada)
}

// Result descreve a decisão do limitador para uma requisição
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter decide se uma requisição cabe na janela atual
type Limiter interface {
	Allow(ctx context.Context, cfg LimitConfig) (Result, error)
}

// windowFor calcula o fim da janela fixa que contém now
func windowFor(now time.Time, period time.Duration) (expireAt time.Time, resetAfter time.Duration) {
	start := now.Truncate(period)
	expireAt = start.Add(period)
	return expireAt, expireAt.Sub(now)
}

func burstLimit(cfg LimitConfig) int {
	factor := cfg.BurstFactor
	if factor <= 0 {
		factor = 1.0
	}
	return int(float64(cfg.Limit) * factor)
}
