package service

import (
	"net/http"
	"time"

	"github.com/dabbsLondon/rdata/api"
	"github.com/segmentio/ksuid"
)

func handleQuery(c *Core, w *ResponseWriter, r *Request) {
	script, ok := r.Script(w)
	if !ok {
		return
	}
	status, err := c.scheduler.Acquire(r.Context())
	if err != nil {
		w.Error(err)
		return
	}
	// The job ID names the result file, so it is always minted here;
	// a client-chosen X-Request-ID must never reach the file system.
	jobID := ksuid.New().String()
	start := time.Now()
	outcome := "error"
	// Released in a defer so a panicking run cannot leak the slot.
	defer func() {
		c.scheduler.Release(outcome, time.Since(start))
	}()
	output, steps, err := c.runner.Run(r.Context(), script, jobID)
	elapsed := time.Since(start)
	if err == nil {
		outcome = "ok"
	}
	cost := int64(steps) * api.CostPerStep
	c.recorder.Record(r.Context(), QueryRecord{
		JobID:      jobID,
		Query:      string(script),
		Status:     outcome,
		DurationMS: elapsed.Milliseconds(),
		Cost:       cost,
		OutputSize: outputSize(output),
	})
	if err != nil {
		w.Error(err)
		return
	}
	w.Respond(http.StatusOK, api.QueryResponse{
		JobID:      jobID,
		Status:     status,
		DurationMS: elapsed.Milliseconds(),
		Cost:       cost,
		Output:     output,
	})
}

func outputSize(output *api.Output) int64 {
	if output == nil {
		return 0
	}
	if output.Kind == api.OutputInline {
		return output.UncompressedSize
	}
	return output.ByteSize
}
