package agg

import "github.com/dabbsLondon/rdata"

// Func combines a running aggregate with the next value.
type Func func(float64, float64) float64

var (
	Min Func = func(a, b float64) float64 {
		if a < b {
			return a
		}
		return b
	}
	Max Func = func(a, b float64) float64 {
		if a > b {
			return a
		}
		return b
	}
	Add Func = func(a, b float64) float64 { return a + b }
)

// fold reduces a column with fn.  Until the first non-null value
// arrives there is no accumulator, so an all-null input folds to null.
type fold struct {
	fn   Func
	acc  float64
	seen bool
}

func (f *fold) Consume(v rdata.Value) {
	if v.IsNull() {
		return
	}
	x := v.AsFloat()
	if !f.seen {
		f.acc, f.seen = x, true
		return
	}
	f.acc = f.fn(f.acc, x)
}

func (f *fold) Result() rdata.Value {
	if !f.seen {
		return rdata.NullValue(rdata.TypeFloat64)
	}
	return rdata.NewFloat64(f.acc)
}
