package runtime

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/rio/csvio"
	"github.com/dabbsLondon/rdata/rio/parquetio"
)

// Loader reads source files for load statements.  Script paths are
// resolved under a single data root; anything that escapes it is
// refused before touching storage.
type Loader struct {
	engine   storage.Engine
	root     *storage.URI
	maxBytes int64
}

// NewLoader returns a Loader serving files under root.  A maxBytes of
// zero means no limit on source size.
func NewLoader(engine storage.Engine, root *storage.URI, maxBytes int64) *Loader {
	return &Loader{engine: engine, root: root, maxBytes: maxBytes}
}

// Resolve maps a script-supplied path to a URI under the data root.
// Scripts name files relative to the root, they do not browse the
// host, so absolute paths and parent references are rejected.
func (l *Loader) Resolve(p string) (*storage.URI, error) {
	if p == "" {
		return nil, errors.New("empty source path")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return nil, fmt.Errorf("source path %q must be relative", p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return nil, fmt.Errorf("source path %q escapes the data directory", p)
	}
	return l.root.AppendPath(clean), nil
}

func (l *Loader) Load(ctx context.Context, op *ast.Load) (*rdata.Table, error) {
	u, err := l.Resolve(op.Path)
	if err != nil {
		return nil, err
	}
	r, err := l.engine.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if l.maxBytes > 0 {
		// Size is advisory: engines that cannot stat cheaply skip
		// the check rather than reading the object twice.
		if size, err := storage.Size(r); err == nil && size > l.maxBytes {
			return nil, fmt.Errorf("source %q is %d bytes, over the %d-byte load limit",
				op.Path, size, l.maxBytes)
		}
	}
	switch op.Loader {
	case "parquet":
		seeker, err := storage.NewSeeker(r)
		if err != nil {
			return nil, err
		}
		return parquetio.Read(seeker)
	case "csv":
		return csvio.Read(r)
	}
	return nil, fmt.Errorf("unknown loader %q", op.Loader)
}
