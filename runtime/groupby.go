package runtime

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/runtime/agg"
)

// evalGroupBy hashes rows by their key columns and reduces each group
// with the requested aggregations.  With no keys the whole frame
// reduces to a single row, even when empty.  Output rows are ordered
// by key, ascending, so results are deterministic.
func evalGroupBy(in *rdata.Table, op *ast.GroupBy) (*rdata.Table, error) {
	aggCols := make([]rdata.Column, len(op.Aggs))
	for i, a := range op.Aggs {
		col, ok := in.Lookup(a.Column)
		if !ok {
			return nil, columnNotFound(a.Column, in)
		}
		if err := agg.Check(a.Func, col.Type()); err != nil {
			return nil, fmt.Errorf("cannot aggregate column %q: %w", a.Column, err)
		}
		aggCols[i] = col
	}
	if len(op.Keys) == 0 {
		return aggregateAll(in, op, aggCols)
	}
	keyCols := make([]rdata.Column, len(op.Keys))
	for i, name := range op.Keys {
		col, ok := in.Lookup(name)
		if !ok {
			return nil, columnNotFound(name, in)
		}
		keyCols[i] = col
	}
	type group struct {
		row int
		fns []agg.Function
	}
	groups := make(map[string]*group)
	var order []*group
	for i := 0; i < in.NumRows(); i++ {
		k := groupKey(keyCols, i)
		g, ok := groups[k]
		if !ok {
			g = &group{row: i, fns: newAggs(op.Aggs, aggCols)}
			groups[k] = g
			order = append(order, g)
		}
		for j, c := range aggCols {
			g.fns[j].Consume(c.Value(i))
		}
	}
	sort.SliceStable(order, func(x, y int) bool {
		return compareRows(keyCols, nil, order[x].row, order[y].row) < 0
	})
	keyBuilders := make([]*rdata.ColumnBuilder, len(keyCols))
	for i, name := range op.Keys {
		keyBuilders[i] = rdata.NewColumnBuilder(name, keyCols[i].Type())
	}
	aggBuilders := newAggBuilders(op.Aggs)
	for _, g := range order {
		for k, c := range keyCols {
			if err := keyBuilders[k].Append(c.Value(g.row)); err != nil {
				return nil, err
			}
		}
		for j, f := range g.fns {
			if err := aggBuilders[j].Append(f.Result()); err != nil {
				return nil, err
			}
		}
	}
	cols := make([]rdata.Column, 0, len(keyBuilders)+len(aggBuilders))
	for _, b := range keyBuilders {
		cols = append(cols, b.Build())
	}
	for _, b := range aggBuilders {
		cols = append(cols, b.Build())
	}
	return rdata.NewTable(cols...)
}

// aggregateAll reduces the whole frame to one row.  An empty input
// still produces the row: count is 0 and everything else is null.
func aggregateAll(in *rdata.Table, op *ast.GroupBy, aggCols []rdata.Column) (*rdata.Table, error) {
	fns := newAggs(op.Aggs, aggCols)
	for i := 0; i < in.NumRows(); i++ {
		for j, c := range aggCols {
			fns[j].Consume(c.Value(i))
		}
	}
	builders := newAggBuilders(op.Aggs)
	cols := make([]rdata.Column, len(builders))
	for j, b := range builders {
		if err := b.Append(fns[j].Result()); err != nil {
			return nil, err
		}
		cols[j] = b.Build()
	}
	return rdata.NewTable(cols...)
}

// newAggs builds one aggregator per expression.  Types were checked by
// the caller so construction cannot fail.
func newAggs(exprs []ast.AggExpr, cols []rdata.Column) []agg.Function {
	fns := make([]agg.Function, len(exprs))
	for j, a := range exprs {
		fns[j], _ = agg.New(a.Func, cols[j].Type())
	}
	return fns
}

func newAggBuilders(exprs []ast.AggExpr) []*rdata.ColumnBuilder {
	builders := make([]*rdata.ColumnBuilder, len(exprs))
	for j, a := range exprs {
		builders[j] = rdata.NewColumnBuilder(a.OutputName(), agg.ResultType(a.Func))
	}
	return builders
}

// groupKey encodes row i's key values into a hashable string.  Each
// component is length-prefixed so adjacent values cannot collide.
func groupKey(keyCols []rdata.Column, i int) string {
	var b strings.Builder
	for _, c := range keyCols {
		if c.Null(i) {
			b.WriteString("~;")
			continue
		}
		s := c.Value(i).String()
		fmt.Fprintf(&b, "%d:%s;", len(s), s)
	}
	return b.String()
}
