package cache

import (
	"context"

	"github.com/dabbsLondon/rdata/pkg/storage"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
)

type LocalCache struct {
	storage.Engine
	cacheable Cacheable
	lru       *lru.Cache[string, []byte]
	metrics
}

var _ storage.Engine = (*LocalCache)(nil)

func NewLocalCache(engine storage.Engine, cacheable Cacheable, capacity int, reg prometheus.Registerer) (*LocalCache, error) {
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &LocalCache{
		Engine:    engine,
		cacheable: cacheable,
		lru:       cache,
		metrics:   newMetrics(reg),
	}, nil
}

func (c *LocalCache) Get(ctx context.Context, u *storage.URI) (storage.Reader, error) {
	if !c.cacheable(u) {
		return c.Engine.Get(ctx, u)
	}
	kind := kindOf(u)
	if b, ok := c.lru.Get(u.String()); ok {
		c.hits.WithLabelValues(kind).Inc()
		return storage.NewBytesReader(b), nil
	}
	b, err := storage.Get(ctx, c.Engine, u)
	if err != nil {
		return nil, err
	}
	c.lru.Add(u.String(), b)
	c.misses.WithLabelValues(kind).Inc()
	return storage.NewBytesReader(b), nil
}
