package agg

import "github.com/dabbsLondon/rdata"

type count struct {
	count int64
}

func (c *count) Consume(v rdata.Value) {
	if v.IsNull() {
		return
	}
	c.count++
}

func (c *count) Result() rdata.Value {
	return rdata.NewInt64(c.count)
}
