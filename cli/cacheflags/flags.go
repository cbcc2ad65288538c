package cacheflags

import (
	"flag"
	"time"

	"github.com/dabbsLondon/rdata/pkg/storage/cache"
)

type Flags struct {
	cache.Config
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.Var(&f.Kind, "cache.kind", "kind of source file cache (none, local, redis)")
	fs.IntVar(&f.Capacity, "cache.local.size", 128, "number of source files to keep in the local cache")
	fs.DurationVar(&f.Expiration, "cache.redis.keyexpiry", time.Hour*24, "expiration duration of cached redis keys")
}
