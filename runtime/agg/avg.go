package agg

import "github.com/dabbsLondon/rdata"

type avg struct {
	sum   float64
	count uint64
}

func (a *avg) Consume(v rdata.Value) {
	if v.IsNull() {
		return
	}
	a.sum += v.AsFloat()
	a.count++
}

func (a *avg) Result() rdata.Value {
	if a.count == 0 {
		return rdata.NullValue(rdata.TypeFloat64)
	}
	return rdata.NewFloat64(a.sum / float64(a.count))
}
