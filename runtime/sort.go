package runtime

import (
	"sort"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
)

// evalSort orders rows by the sort keys.  The sort is stable and nulls
// go last under either direction.
func evalSort(in *rdata.Table, op *ast.Sort) (*rdata.Table, error) {
	cols := make([]rdata.Column, len(op.Keys))
	desc := make([]bool, len(op.Keys))
	for i, k := range op.Keys {
		col, ok := in.Lookup(k.Column)
		if !ok {
			return nil, columnNotFound(k.Column, in)
		}
		cols[i] = col
		desc[i] = k.Descending
	}
	indices := make([]int, in.NumRows())
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(x, y int) bool {
		return compareRows(cols, desc, indices[x], indices[y]) < 0
	})
	return in.Take(indices), nil
}

// compareRows compares rows i and j of cols key by key.  A nil desc
// means every key ascends.  Nulls are handled before the direction
// flip so they sort last either way.
func compareRows(cols []rdata.Column, desc []bool, i, j int) int {
	for k, c := range cols {
		ni, nj := c.Null(i), c.Null(j)
		if ni || nj {
			if ni && nj {
				continue
			}
			if ni {
				return 1
			}
			return -1
		}
		cmp := rdata.Compare(c.Value(i), c.Value(j))
		if cmp == 0 {
			continue
		}
		if desc != nil && desc[k] {
			return -cmp
		}
		return cmp
	}
	return 0
}
