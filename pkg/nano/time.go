// Package nano implements a nanosecond-resolution epoch timestamp as a
// simple int64 so timestamps can live in columnar vectors without boxing.
package nano

import (
	"errors"
	"math"
	"strconv"
	"time"
)

// Ts is a timestamp in nanoseconds since the Unix epoch.
type Ts int64

const (
	MinTs = Ts(math.MinInt64)
	MaxTs = Ts(math.MaxInt64)
)

// TimeToTs converts a time.Time to a Ts.
func TimeToTs(t time.Time) Ts {
	return Ts(t.UnixNano())
}

// Time converts a Ts to a time.Time in UTC.
func (t Ts) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

func (t Ts) String() string {
	return t.Time().Format(time.RFC3339Nano)
}

// StringFloat formats the timestamp as seconds with the fractional part
// trimmed of trailing zeros and omitted entirely when zero.
func (t Ts) StringFloat() string {
	return string(t.AppendFloat(nil, -1))
}

// AppendFloat appends the timestamp formatted as seconds to dst.  A
// non-negative precision fixes the number of fractional digits; a negative
// precision trims trailing zeros and drops the decimal point if nothing
// remains.
func (t Ts) AppendFloat(dst []byte, precision int) []byte {
	n := int64(t)
	if n < 0 {
		dst = append(dst, '-')
		n = -n
	}
	sec := n / 1_000_000_000
	frac := n % 1_000_000_000
	dst = strconv.AppendInt(dst, sec, 10)
	if precision == 0 || (precision < 0 && frac == 0) {
		return dst
	}
	buf := make([]byte, 0, 9)
	for scale := int64(100_000_000); scale > 0; scale /= 10 {
		buf = append(buf, byte('0'+frac/scale))
		frac %= scale
	}
	if precision > 0 {
		for len(buf) < precision {
			buf = append(buf, '0')
		}
		buf = buf[:precision]
	} else {
		for len(buf) > 0 && buf[len(buf)-1] == '0' {
			buf = buf[:len(buf)-1]
		}
	}
	if len(buf) == 0 {
		return dst
	}
	dst = append(dst, '.')
	return append(dst, buf...)
}

// Parse interprets b as a decimal number of seconds since the epoch, with
// optional sign, fraction, and exponent, and returns the corresponding Ts.
// Integer and fractional digits are converted exactly; only exponent forms
// fall back to float conversion.
func Parse(b []byte) (Ts, error) {
	if len(b) == 0 {
		return 0, errors.New("invalid time format")
	}
	for _, c := range b {
		if c == 'e' || c == 'E' {
			f, err := strconv.ParseFloat(string(b), 64)
			if err != nil {
				return 0, err
			}
			return Ts(f * 1e9), nil
		}
	}
	i := 0
	neg := false
	if b[0] == '+' || b[0] == '-' {
		neg = b[0] == '-'
		i++
	}
	var sec int64
	ndigit := 0
	for ; i < len(b) && b[i] != '.'; i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, errors.New("invalid time format")
		}
		sec = sec*10 + int64(c-'0')
		ndigit++
	}
	if ndigit == 0 {
		return 0, errors.New("invalid time format")
	}
	ns := sec * 1_000_000_000
	if i < len(b) {
		// skip the decimal point
		i++
		scale := int64(100_000_000)
		for ; i < len(b); i++ {
			c := b[i]
			if c < '0' || c > '9' {
				return 0, errors.New("invalid time format")
			}
			if scale > 0 {
				ns += int64(c-'0') * scale
				scale /= 10
			}
		}
	}
	if neg {
		ns = -ns
	}
	return Ts(ns), nil
}

// ParseMillis interprets b as an unsigned decimal number of milliseconds
// since the epoch.
func ParseMillis(b []byte) (Ts, error) {
	if len(b) == 0 {
		return 0, errors.New("invalid milliseconds format")
	}
	var ms int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, errors.New("invalid milliseconds format")
		}
		ms = ms*10 + int64(c-'0')
		if ms > math.MaxInt64/1_000_000 {
			return 0, errors.New("milliseconds overflow")
		}
	}
	return Ts(ms * 1_000_000), nil
}
