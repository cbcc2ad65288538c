package service

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/materialize"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/rio/parquetio"
	"go.uber.org/zap"
)

// Recorder appends one row per completed query to a parquet file so
// query history can itself be loaded and analyzed with a script.
// Recording is best effort: a failure is logged and the query's
// response is unaffected.
type Recorder struct {
	engine storage.Engine
	uri    *storage.URI
	logger *zap.Logger

	// Parquet files cannot be appended in place, so each record
	// rewrites the file under the mutex: read all, add a row,
	// atomically replace.
	mu sync.Mutex
}

func NewRecorder(engine storage.Engine, uri *storage.URI, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		engine: engine,
		uri:    uri,
		logger: logger.Named("recorder"),
	}
}

// QueryRecord is one row of the query metrics file.
type QueryRecord struct {
	JobID      string
	Query      string
	Status     string
	DurationMS int64
	Cost       int64
	OutputSize int64
}

// Record appends rec to the metrics file.
func (r *Recorder) Record(ctx context.Context, rec QueryRecord) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	history, err := r.read(ctx)
	if err != nil {
		r.logger.Warn("Reading query metrics failed", zap.Error(err))
		return
	}
	history = append(history, rec)
	if err := r.write(ctx, history); err != nil {
		r.logger.Warn("Writing query metrics failed", zap.Error(err))
	}
}

func (r *Recorder) read(ctx context.Context) ([]QueryRecord, error) {
	b, err := storage.Get(ctx, r.engine, r.uri)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	t, err := parquetio.Read(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	recs := make([]QueryRecord, t.NumRows())
	for i := range recs {
		recs[i] = QueryRecord{
			JobID:      stringAt(t, "job_id", i),
			Query:      stringAt(t, "query", i),
			Status:     stringAt(t, "status", i),
			DurationMS: intAt(t, "duration_ms", i),
			Cost:       intAt(t, "cost", i),
			OutputSize: intAt(t, "output_size", i),
		}
	}
	return recs, nil
}

func (r *Recorder) write(ctx context.Context, recs []QueryRecord) error {
	jobIDs := make([]string, len(recs))
	queries := make([]string, len(recs))
	statuses := make([]string, len(recs))
	durations := make([]int64, len(recs))
	costs := make([]int64, len(recs))
	sizes := make([]int64, len(recs))
	for i, rec := range recs {
		jobIDs[i] = rec.JobID
		queries[i] = rec.Query
		statuses[i] = rec.Status
		durations[i] = rec.DurationMS
		costs[i] = rec.Cost
		sizes[i] = rec.OutputSize
	}
	t, err := rdata.NewTable(
		rdata.NewStrings("job_id", jobIDs, nil),
		rdata.NewStrings("query", queries, nil),
		rdata.NewStrings("status", statuses, nil),
		rdata.NewInts("duration_ms", durations, nil),
		rdata.NewInts("cost", costs, nil),
		rdata.NewInts("output_size", sizes, nil),
	)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := parquetio.Write(&buf, t); err != nil {
		return err
	}
	return materialize.Put(ctx, r.engine, r.uri, buf.Bytes())
}

func stringAt(t *rdata.Table, name string, i int) string {
	if col, ok := t.Lookup(name); ok && col.Type() == rdata.TypeString && !col.Null(i) {
		return col.Value(i).Str()
	}
	return ""
}

func intAt(t *rdata.Table, name string, i int) int64 {
	if col, ok := t.Lookup(name); ok && col.Type() == rdata.TypeInt64 && !col.Null(i) {
		return col.Value(i).Int()
	}
	return 0
}
