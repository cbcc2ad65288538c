// Package cache wraps a storage engine with a read-through cache for
// immutable objects, typically source files on a cloud object store.
package cache

import (
	"fmt"
	"time"

	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
)

// Cacheable decides whether an object may be cached.  Objects that can
// be overwritten in place must not be.
type Cacheable func(*storage.URI) bool

type Config struct {
	Kind Kind
	// Capacity is the local cache's entry count.
	Capacity int
	// Expiration bounds a redis entry's lifetime.
	Expiration time.Duration
}

// NewCache returns engine wrapped according to conf, or engine itself
// for KindNone.  An unset Kind means KindNone, so a zero Config is
// usable.  The redis client is only used for KindRedis.
func NewCache(conf Config, engine storage.Engine, cacheable Cacheable, client *redis.Client, reg prometheus.Registerer) (storage.Engine, error) {
	switch conf.Kind {
	case KindNone, "":
		return engine, nil
	case KindLocal:
		return NewLocalCache(engine, cacheable, conf.Capacity, reg)
	case KindRedis:
		return NewRedisCache(engine, cacheable, client, conf.Expiration, reg), nil
	}
	return nil, fmt.Errorf("unknown source cache kind: %q", conf.Kind)
}
