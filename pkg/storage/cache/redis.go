package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
)

type RedisCache struct {
	storage.Engine
	cacheable Cacheable
	client    *redis.Client
	expiry    time.Duration
	metrics
}

var _ storage.Engine = (*RedisCache)(nil)

func NewRedisCache(engine storage.Engine, cacheable Cacheable, client *redis.Client, expiry time.Duration, reg prometheus.Registerer) *RedisCache {
	return &RedisCache{
		Engine:    engine,
		cacheable: cacheable,
		client:    client,
		expiry:    expiry,
		metrics:   newMetrics(reg),
	}
}

func (c *RedisCache) Get(ctx context.Context, u *storage.URI) (storage.Reader, error) {
	if !c.cacheable(u) {
		return c.Engine.Get(ctx, u)
	}
	kind := kindOf(u)
	res := c.client.Get(ctx, u.String())
	if err := res.Err(); err == nil {
		b, err := res.Bytes()
		if err != nil {
			return nil, err
		}
		c.hits.WithLabelValues(kind).Inc()
		return storage.NewBytesReader(b), nil
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	b, err := storage.Get(ctx, c.Engine, u)
	if err != nil {
		return nil, err
	}
	c.misses.WithLabelValues(kind).Inc()
	if err := c.client.Set(ctx, u.String(), b, c.expiry).Err(); err != nil {
		return nil, err
	}
	return storage.NewBytesReader(b), nil
}
