package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type window struct {
	count    int
	expireAt time.Time
}

// MemoryLimiter implementa janela fixa em memória. Serve para uma única instância
// da API; com várias réplicas use o RedisLimiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows *cache.Cache
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: cache.New(cache.NoExpiration, time.Minute),
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, cfg LimitConfig) (Result, error) {
	if cfg.Limit <= 0 {
		return Result{Allowed: true}, errors.New("limite deve ser maior que zero")
	}
	if cfg.Period <= 0 {
		return Result{Allowed: true}, errors.New("período deve ser maior que zero")
	}

	now := m.now()
	expireAt, resetAfter := windowFor(now, cfg.Period)

	m.mu.Lock()
	defer m.mu.Unlock()

	w := &window{expireAt: expireAt}
	if v, ok := m.windows.Get(cfg.Key); ok {
		if existing := v.(*window); existing.expireAt.After(now) {
			w = existing
		}
	}
	w.count++
	m.windows.Set(cfg.Key, w, w.expireAt.Sub(now))

	remaining := cfg.Limit - w.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:    w.count <= burstLimit(cfg),
		Limit:      cfg.Limit,
		Remaining:  remaining,
		ResetAfter: resetAfter,
	}, nil
}
