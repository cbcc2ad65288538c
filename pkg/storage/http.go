package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

type HTTPEngine struct{}

var _ Engine = (*HTTPEngine)(nil)

func NewHTTP() *HTTPEngine {
	return &HTTPEngine{}
}

func (*HTTPEngine) Get(ctx context.Context, u *URI) (Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", u, os.ErrNotExist)
		}
		return nil, errors.New(resp.Status)
	}
	return &httpReader{resp}, nil
}

// httpReader exposes the response size so callers can wrap a Get in a
// Seeker.  ReadAt is not supported since the body only streams forward.
type httpReader struct {
	resp *http.Response
}

func (r *httpReader) Read(b []byte) (int, error) { return r.resp.Body.Read(b) }
func (r *httpReader) Close() error               { return r.resp.Body.Close() }

func (*httpReader) ReadAt(_ []byte, _ int64) (int, error) { return 0, ErrNotSupported }

func (r *httpReader) Size() (int64, error) {
	if r.resp.ContentLength < 0 {
		return 0, ErrNotSupported
	}
	return r.resp.ContentLength, nil
}

func (*HTTPEngine) Put(_ context.Context, u *URI) (io.WriteCloser, error) {
	return nil, ErrNotSupported
}

func (*HTTPEngine) PutIfNotExists(context.Context, *URI, []byte) error {
	return ErrNotSupported
}

func (*HTTPEngine) Delete(_ context.Context, u *URI) error {
	return ErrNotSupported
}

func (*HTTPEngine) DeleteByPrefix(_ context.Context, u *URI) error {
	return ErrNotSupported
}

func (*HTTPEngine) Size(_ context.Context, u *URI) (int64, error) {
	return 0, ErrNotSupported
}

func (*HTTPEngine) Exists(_ context.Context, u *URI) (bool, error) {
	return false, ErrNotSupported
}

func (*HTTPEngine) List(ctx context.Context, u *URI) ([]Info, error) {
	return nil, ErrNotSupported
}
