package cache

import (
	"context"
	"time"
)

var _ Cache = (*NoOpCache)(nil)

// NoOpCache é usado quando cache.enabled=false: todo Get é um miss
type NoOpCache struct{}

func (c *NoOpCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (c *NoOpCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (c *NoOpCache) Delete(context.Context, string) error { return nil }

func (c *NoOpCache) Clear(context.Context) error { return nil }

func (c *NoOpCache) Ping(context.Context) error { return nil }
