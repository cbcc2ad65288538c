package runtime

import (
	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
)

// evalSelect projects the named columns in the order given.
func evalSelect(in *rdata.Table, op *ast.Select) (*rdata.Table, error) {
	cols := make([]rdata.Column, 0, len(op.Columns))
	for _, name := range op.Columns {
		col, ok := in.Lookup(name)
		if !ok {
			return nil, columnNotFound(name, in)
		}
		cols = append(cols, col)
	}
	return rdata.NewTable(cols...)
}
