package api

import (
	"context"
)

const RequestIDHeader = "X-Request-ID"

func RequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(RequestIDHeader); v != nil {
		return v.(string)
	}
	return ""
}

type Error struct {
	Type    string      `json:"type"`
	Kind    string      `json:"kind"`
	Message string      `json:"error"`
	Info    interface{} `json:"info,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// QueryRequest is the JSON envelope for a script.  The query endpoint
// also accepts the bare script as a text/plain body.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse reports the result of one script run.  JobID echoes
// the request ID, Status records whether the run was admitted
// immediately ("running") or waited for a worker slot ("queued"), and
// Cost is the step-count heuristic charged for the run.
type QueryResponse struct {
	JobID      string  `json:"job_id"`
	Status     string  `json:"status"`
	DurationMS int64   `json:"duration_ms"`
	Cost       int64   `json:"cost"`
	Output     *Output `json:"output"`
}

// Admission statuses reported in QueryResponse.Status.
const (
	StatusRunning = "running"
	StatusQueued  = "queued"
)

// CostPerStep is the flat per-step charge reported in
// QueryResponse.Cost.
const CostPerStep = 10

// Output kinds.  Results under the inline ceiling travel compressed in
// the response; larger ones land in the results store and are
// described by reference.
const (
	OutputInline = "inline"
	OutputFile   = "file"
)

// Output describes where a result table went.  For Kind inline, Data
// holds the payload (base64 in JSON) and ContentType names its
// encoding.  For Kind file, Path locates the result in the results
// store and ByteSize is its uncompressed size on disk.
type Output struct {
	Kind             string `json:"kind"`
	Data             []byte `json:"data,omitempty"`
	ContentType      string `json:"content_type,omitempty"`
	UncompressedSize int64  `json:"uncompressed_size,omitempty" unit:"bytes"`
	CompressedSize   int64  `json:"compressed_size,omitempty" unit:"bytes"`
	Path             string `json:"path,omitempty"`
	ByteSize         int64  `json:"byte_size,omitempty" unit:"bytes"`
	RowCount         int64  `json:"row_count"`
}

type VersionResponse struct {
	Version string `json:"version"`
}
