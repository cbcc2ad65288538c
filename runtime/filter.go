package runtime

import (
	"fmt"

	"github.com/araddon/dateparse"
	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/pkg/nano"
)

// evalFilter keeps the rows whose column value satisfies the
// comparison.  A null never satisfies any comparison, != included.
func evalFilter(in *rdata.Table, op *ast.Filter) (*rdata.Table, error) {
	col, ok := in.Lookup(op.Cond.Column)
	if !ok {
		return nil, columnNotFound(op.Cond.Column, in)
	}
	want := op.Cond.Value
	switch {
	case want.Type() == col.Type():
	case want.Type().IsNumeric() && col.Type().IsNumeric():
	case col.Type() == rdata.TypeTime && want.Type() == rdata.TypeString:
		t, err := dateparse.ParseAny(want.Str())
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a time for column %q", want.Str(), op.Cond.Column)
		}
		want = rdata.NewTime(nano.TimeToTs(t))
	default:
		return nil, fmt.Errorf("cannot compare %s column %q to %s literal",
			col.Type(), op.Cond.Column, want.Type())
	}
	var indices []int
	for i := 0; i < col.Len(); i++ {
		if col.Null(i) {
			continue
		}
		if matches(op.Cond.Op, rdata.Compare(col.Value(i), want)) {
			indices = append(indices, i)
		}
	}
	return in.Take(indices), nil
}

func matches(op string, cmp int) bool {
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}
