package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/pkg/promtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type panicRunner struct{}

func (panicRunner) Run(context.Context, []byte, string) (*api.Output, int, error) {
	panic("runner exploded")
}

// A panicking run is recovered by the middleware, but the worker slot
// must be released all the same or the scheduler starves after Workers
// panics.
func TestQueryPanicReleasesWorker(t *testing.T) {
	core, err := NewCore(context.Background(), Config{
		DataRoot: t.TempDir(),
		Workers:  1,
		Logger:   zaptest.NewLogger(t, zaptest.Level(zap.FatalLevel)),
	})
	require.NoError(t, err)
	defer core.Shutdown()
	core.runner = panicRunner{}
	srv := httptest.NewServer(core)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/query", api.MediaTypeText,
		strings.NewReader(`a = pl.read_parquet("t.parquet")`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	assert.Zero(t, promtest.GaugeValue(t, core.registry, "query_active_jobs", nil))
	assert.Equal(t, 1.0, promtest.CounterValue(t, core.registry, "query_jobs_total",
		map[string]string{"outcome": "error"}))

	// The sole slot is free again.
	status, err := core.scheduler.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.StatusRunning, status)
	core.scheduler.Release("ok", 0)
}
