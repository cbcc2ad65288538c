package api

import (
	"errors"
	"fmt"
	"mime"
	"strings"
)

const (
	MediaTypeAny       = "*/*"
	MediaTypeArrows    = "application/vnd.apache.arrow.stream"
	MediaTypeArrowsLZ4 = "application/vnd.apache.arrow.stream+lz4"
	MediaTypeJSON      = "application/json"
	MediaTypeText      = "text/plain"
)

type ErrUnsupportedMimeType struct {
	Type string
}

func (m *ErrUnsupportedMimeType) Error() string {
	return fmt.Sprintf("unsupported MIME type: %s", m.Type)
}

// MediaTypeToFormat returns the query body format of the media type
// value s: "json" for the QueryRequest envelope or "text" for a bare
// script. If s is MediaTypeAny or undefined the default format dflt
// will be returned.
func MediaTypeToFormat(s string, dflt string) (string, error) {
	if s = strings.TrimSpace(s); s == "" {
		return dflt, nil
	}
	typ, _, err := mime.ParseMediaType(s)
	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return "", err
	}
	switch typ {
	case MediaTypeAny, "":
		return dflt, nil
	case MediaTypeJSON:
		return "json", nil
	case MediaTypeText:
		return "text", nil
	}
	return "", &ErrUnsupportedMimeType{typ}
}
