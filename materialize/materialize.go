// Package materialize turns a result table into the output half of a
// query response: small results travel compressed inside the response,
// large ones land in the results store and are returned by reference.
package materialize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/pkg/fs"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/rio/arrowio"
	"github.com/pierrec/lz4/v4"
)

// DefaultInlineMax is the inline ceiling applied when Config leaves
// InlineMax zero.  Results whose Arrow encoding is this size or larger
// go to the results store.
const DefaultInlineMax = 1_000_000

type Config struct {
	// ResultsRoot is where file outputs are written.
	ResultsRoot *storage.URI
	// InlineMax bounds the uncompressed size of inline outputs.  The
	// comparison is strict: a result of exactly InlineMax bytes is
	// written to a file.
	InlineMax int64
}

// Materialize encodes t as an Arrow IPC stream and returns an Output
// describing where the encoding went.  The inline decision is made on
// the uncompressed size so the cutoff does not depend on how well a
// particular table compresses.  File outputs are named by the request
// ID, which is unique per query, so concurrent runs never collide.
func Materialize(ctx context.Context, engine storage.Engine, t *rdata.Table, conf Config, requestID string) (*api.Output, error) {
	inlineMax := conf.InlineMax
	if inlineMax == 0 {
		inlineMax = DefaultInlineMax
	}
	var buf bytes.Buffer
	if err := arrowio.Write(&buf, t); err != nil {
		return nil, &rdata.MaterializationError{Err: err}
	}
	size := int64(buf.Len())
	if size < inlineMax {
		data, err := compress(buf.Bytes())
		if err != nil {
			return nil, &rdata.MaterializationError{Err: err}
		}
		return &api.Output{
			Kind:             api.OutputInline,
			Data:             data,
			ContentType:      api.MediaTypeArrowsLZ4,
			UncompressedSize: size,
			CompressedSize:   int64(len(data)),
			RowCount:         int64(t.NumRows()),
		}, nil
	}
	if conf.ResultsRoot == nil || conf.ResultsRoot.IsZero() {
		return nil, &rdata.MaterializationError{
			Err: fmt.Errorf("result is %d bytes but no results root is configured", size),
		}
	}
	u := conf.ResultsRoot.AppendPath("output_" + requestID + ".arrows")
	if err := Put(ctx, engine, u, buf.Bytes()); err != nil {
		return nil, &rdata.MaterializationError{Err: err}
	}
	return &api.Output{
		Kind:     api.OutputFile,
		Path:     u.String(),
		ByteSize: size,
		RowCount: int64(t.NumRows()),
	}, nil
}

func compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Put writes b under its final name only once the write has fully
// succeeded.  Local files go through a temp-file rename; remote
// engines upload in a single Put, which is already all-or-nothing.
func Put(ctx context.Context, engine storage.Engine, u *storage.URI, b []byte) error {
	if u.HasScheme(storage.FileScheme) {
		path := u.Filepath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return fs.ReplaceFile(path, 0644, func(w io.Writer) error {
			_, err := w.Write(b)
			return err
		})
	}
	return storage.Put(ctx, engine, u, bytes.NewReader(b))
}
