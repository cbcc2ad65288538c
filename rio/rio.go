// Package rio provides access to the table encodings the engine reads
// and writes, keyed by format name.  The concrete codecs live in the
// per-format subpackages; this package maps names to extensions and
// media types and dispatches whole-table reads and writes.
package rio

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/rio/arrowio"
	"github.com/dabbsLondon/rdata/rio/csvio"
	"github.com/dabbsLondon/rdata/rio/parquetio"
	"github.com/dabbsLondon/rdata/rio/tableio"
)

// Formats lists the format names accepted by Read and Write.  The
// table format is write-only.
var Formats = []string{"arrows", "csv", "parquet", "table"}

// Extension returns the conventional file extension for format,
// including the leading dot, or "" if the format is unknown.
func Extension(format string) string {
	switch format {
	case "arrows":
		return ".arrows"
	case "csv":
		return ".csv"
	case "parquet":
		return ".parquet"
	case "table":
		return ".tbl"
	default:
		return ""
	}
}

// MediaType returns the media type announced for format on the wire,
// or "" if the format is unknown.
func MediaType(format string) string {
	switch format {
	case "arrows":
		return "application/vnd.apache.arrow.stream"
	case "csv":
		return "text/csv"
	case "parquet":
		return "application/vnd.apache.parquet"
	case "table":
		return "text/plain"
	default:
		return ""
	}
}

// FormatFromPath infers a format name from the extension of p.
func FormatFromPath(p string) (string, error) {
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".arrows":
		return "arrows", nil
	case ".csv":
		return "csv", nil
	case ".parquet":
		return "parquet", nil
	case ".tbl":
		return "table", nil
	default:
		return "", fmt.Errorf("no format for extension %q", ext)
	}
}

// Write encodes t to w in the named format.
func Write(w io.Writer, format string, t *rdata.Table) error {
	switch format {
	case "arrows":
		return arrowio.Write(w, t)
	case "csv":
		return csvio.Write(w, t)
	case "parquet":
		return parquetio.Write(w, t)
	case "table":
		return tableio.Write(w, t)
	}
	return fmt.Errorf("no such format: %q", format)
}

// Read decodes one table from r in the named format.  Parquet input
// must seek since the format keeps its metadata in a footer.
func Read(r io.Reader, format string) (*rdata.Table, error) {
	switch format {
	case "arrows":
		return arrowio.Read(r)
	case "csv":
		return csvio.Read(r)
	case "parquet":
		rs, ok := r.(io.ReadSeeker)
		if !ok {
			return nil, fmt.Errorf("parquet reader cannot seek")
		}
		return parquetio.Read(rs)
	case "table":
		return nil, fmt.Errorf("format %q is write-only", format)
	}
	return nil, fmt.Errorf("no such format: %q", format)
}
