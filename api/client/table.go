package client

import (
	"bytes"
	"fmt"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/rio/arrowio"
	"github.com/pierrec/lz4/v4"
)

// InlineTable decodes the table carried by an inline output.  File
// outputs live in the server's results store and cannot be decoded
// from the envelope alone.
func InlineTable(output *api.Output) (*rdata.Table, error) {
	if output == nil || output.Kind != api.OutputInline {
		return nil, fmt.Errorf("output is not inline")
	}
	switch output.ContentType {
	case api.MediaTypeArrowsLZ4:
		return arrowio.Read(lz4.NewReader(bytes.NewReader(output.Data)))
	case api.MediaTypeArrows:
		return arrowio.Read(bytes.NewReader(output.Data))
	}
	return nil, fmt.Errorf("unsupported output content type %q", output.ContentType)
}
