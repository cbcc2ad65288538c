package agg

import (
	"encoding/binary"
	"math"

	"github.com/axiomhq/hyperloglog"
	"github.com/dabbsLondon/rdata"
)

// countDistinct uses a hyperloglog sketch to count the unique values
// in a column.  The sketch stays in its exact sparse representation
// until the cardinality is large, after which the count is a close
// approximation.
type countDistinct struct {
	sketch *hyperloglog.Sketch
}

func newCountDistinct() *countDistinct {
	return &countDistinct{sketch: hyperloglog.New()}
}

func (c *countDistinct) Consume(v rdata.Value) {
	if v.IsNull() {
		return
	}
	switch v.Type() {
	case rdata.TypeString:
		c.sketch.Insert([]byte(v.Str()))
	case rdata.TypeBool:
		if v.Bool() {
			c.sketch.Insert([]byte{1})
		} else {
			c.sketch.Insert([]byte{0})
		}
	default:
		var buf [8]byte
		switch v.Type() {
		case rdata.TypeFloat64:
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v.Float()))
		case rdata.TypeTime:
			binary.BigEndian.PutUint64(buf[:], uint64(v.Time()))
		default:
			binary.BigEndian.PutUint64(buf[:], uint64(v.Int()))
		}
		c.sketch.Insert(buf[:])
	}
}

func (c *countDistinct) Result() rdata.Value {
	return rdata.NewInt64(int64(c.sketch.Estimate()))
}
