package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sync/atomic"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/api"
	"go.uber.org/zap"
)

type Request struct {
	*http.Request
	Logger *zap.Logger
}

func newRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (*ResponseWriter, *Request) {
	req := &Request{Request: r}
	req.Logger = logger.With(zap.String("request_id", req.ID()))
	res := &ResponseWriter{
		ResponseWriter: w,
		Logger:         req.Logger,
		request:        req,
	}
	return res, req
}

func (r *Request) ID() string {
	return api.RequestIDFromContext(r.Context())
}

// Script reads the submitted script from the request body.  A JSON
// body carries the api.QueryRequest envelope; anything else is taken
// as the bare script text.
func (r *Request) Script(w *ResponseWriter) ([]byte, bool) {
	format, err := api.MediaTypeToFormat(r.Header.Get("Content-Type"), "text")
	if err != nil {
		w.Error(errBadRequest("%w", err))
		return nil, false
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.Error(errBadRequest("reading request body: %w", err))
		return nil, false
	}
	if format == "json" {
		var req api.QueryRequest
		if err := json.Unmarshal(body, &req); err != nil {
			w.Error(errBadRequest("decoding request body: %w", err))
			return nil, false
		}
		body = []byte(req.Query)
	}
	if len(body) == 0 {
		w.Error(errBadRequest("empty script"))
		return nil, false
	}
	return body, true
}

type ResponseWriter struct {
	http.ResponseWriter
	Logger  *zap.Logger
	request *Request
	written int32
}

func (w *ResponseWriter) Respond(status int, body interface{}) bool {
	if atomic.CompareAndSwapInt32(&w.written, 0, 1) {
		w.Header().Set("Content-Type", api.MediaTypeJSON)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		w.Logger.Warn("Error writing response", zap.Error(err))
		return false
	}
	return true
}

func (w *ResponseWriter) Error(err error) {
	if errors.Is(err, w.request.Context().Err()) && w.request.Context().Err() != nil {
		w.Logger.Info("Request context canceled")
		return
	}
	status, res := errorResponse(err)
	if status >= 500 {
		w.Logger.Warn("Error", zap.Int("status", status), zap.Error(err))
	}
	if atomic.CompareAndSwapInt32(&w.written, 0, 1) {
		w.Header().Set("Content-Type", api.MediaTypeJSON)
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			w.Logger.Warn("Error writing response", zap.Error(err))
		}
	}
}

// badRequestError marks request-shape problems that are neither parse
// nor validation errors, like an undecodable body.
type badRequestError struct {
	err error
}

func errBadRequest(format string, args ...interface{}) error {
	return &badRequestError{fmt.Errorf(format, args...)}
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// errorResponse maps a pipeline error to an HTTP status and body.  The
// stage tells the client whose fault the failure is: parse and
// validation mean the script is malformed (400), execution means a
// well-formed script met data that does not fit it (422, or 404 for a
// missing source), and materialization means the server failed to
// produce output (500).
func errorResponse(e error) (int, *api.Error) {
	ae := &api.Error{Type: "Error", Message: e.Error()}
	var pe *rdata.ParseError
	if errors.As(e, &pe) {
		ae.Kind = "parse"
		ae.Info = map[string]int{"line": pe.Line}
		return http.StatusBadRequest, ae
	}
	var ve *rdata.ValidationError
	if errors.As(e, &ve) {
		ae.Kind = "validation"
		ae.Info = map[string]int{"line": ve.Line}
		return http.StatusBadRequest, ae
	}
	var xe *rdata.ExecutionError
	if errors.As(e, &xe) {
		ae.Kind = "execution"
		ae.Info = map[string]int{"step": xe.Step}
		if errors.Is(e, fs.ErrNotExist) {
			return http.StatusNotFound, ae
		}
		return http.StatusUnprocessableEntity, ae
	}
	var me *rdata.MaterializationError
	if errors.As(e, &me) {
		ae.Kind = "materialization"
		return http.StatusInternalServerError, ae
	}
	var be *badRequestError
	if errors.As(e, &be) {
		ae.Kind = "invalid"
		return http.StatusBadRequest, ae
	}
	ae.Kind = "error"
	return http.StatusInternalServerError, ae
}
