package service

import (
	"context"
	"time"

	"github.com/dabbsLondon/rdata/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkers is the number of queries allowed to execute at once
// when Config leaves Workers zero.
const DefaultWorkers = 4

// Scheduler bounds the number of concurrently executing queries.
// Requests beyond the limit wait on a FIFO semaphore rather than being
// rejected, so a burst of scripts queues instead of failing.
type Scheduler struct {
	sem *semaphore.Weighted

	active   prometheus.Gauge
	queued   prometheus.Gauge
	finished *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewScheduler(workers int64, reg prometheus.Registerer) *Scheduler {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Scheduler{
		sem: semaphore.NewWeighted(workers),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "query_active_jobs",
			Help: "Number of queries currently executing.",
		}),
		queued: factory.NewGauge(prometheus.GaugeOpts{
			Name: "query_queued_jobs",
			Help: "Number of queries waiting for a worker slot.",
		}),
		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "query_jobs_total",
			Help: "Number of completed queries by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "query_duration_seconds",
			Help:    "Query execution time in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

// Acquire blocks until a worker slot is free or ctx is canceled.  The
// returned status records whether the request ran immediately or had
// to wait, which the response reports back to the client.
func (s *Scheduler) Acquire(ctx context.Context) (string, error) {
	if s.sem.TryAcquire(1) {
		s.active.Inc()
		return api.StatusRunning, nil
	}
	s.queued.Inc()
	err := s.sem.Acquire(ctx, 1)
	s.queued.Dec()
	if err != nil {
		return "", err
	}
	s.active.Inc()
	return api.StatusQueued, nil
}

// Release returns the worker slot and records the run's outcome and
// duration.  outcome is "ok" or "error".
func (s *Scheduler) Release(outcome string, elapsed time.Duration) {
	s.active.Dec()
	s.finished.WithLabelValues(outcome).Inc()
	s.duration.Observe(elapsed.Seconds())
	s.sem.Release(1)
}
