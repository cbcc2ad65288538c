// Package sizeflag parses byte-size command line flags so "-inline.max
// 5MB" works as well as a bare byte count.
package sizeflag

import (
	"strconv"

	"github.com/alecthomas/units"
)

type Size int64

func New(dflt int64) Size {
	return Size(dflt)
}

// Set implements flag.Value.  Accepts a plain integer byte count or a
// unit-suffixed size like "1MB" or "512KiB".
func (s *Size) Set(v string) error {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		*s = Size(n)
		return nil
	}
	n, err := units.ParseStrictBytes(v)
	if err != nil {
		return err
	}
	*s = Size(n)
	return nil
}

func (s Size) String() string {
	return units.Base2Bytes(s).String()
}

func (s Size) Int64() int64 {
	return int64(s)
}
