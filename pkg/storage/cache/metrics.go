package cache

import (
	"path"
	"strings"

	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return metrics{
		hits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "source_cache_hits_total",
				Help: "Number of hits for a cache lookup.",
			},
			[]string{"kind"},
		),
		misses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "source_cache_misses_total",
				Help: "Number of misses for a cache lookup.",
			},
			[]string{"kind"},
		),
	}
}

// kindOf labels cache traffic by file extension so parquet and csv
// sources can be told apart on a dashboard.
func kindOf(u *storage.URI) string {
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return "other"
	}
	return ext
}
