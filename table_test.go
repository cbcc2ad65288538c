package rdata_test

import (
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableInvariants(t *testing.T) {
	_, err := rdata.NewTable(
		rdata.NewInts("a", []int64{1, 2}, nil),
		rdata.NewInts("a", []int64{3, 4}, nil),
	)
	assert.ErrorIs(t, err, rdata.ErrDuplicateColumn)

	_, err = rdata.NewTable(
		rdata.NewInts("a", []int64{1, 2}, nil),
		rdata.NewStrings("b", []string{"x"}, nil),
	)
	assert.ErrorIs(t, err, rdata.ErrColumnLength)

	tbl, err := rdata.NewTable()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumColumns())
}

func TestTableTake(t *testing.T) {
	tbl, err := rdata.NewTable(
		rdata.NewInts("n", []int64{10, 20, 30}, []bool{false, true, false}),
		rdata.NewStrings("s", []string{"a", "b", "c"}, nil),
	)
	require.NoError(t, err)
	out := tbl.Take([]int{2, 0, 2})
	require.Equal(t, 3, out.NumRows())
	n, ok := out.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, int64(30), n.Value(0).Int())
	assert.Equal(t, int64(10), n.Value(1).Int())
	assert.Equal(t, int64(30), n.Value(2).Int())
	s, ok := out.Lookup("s")
	require.True(t, ok)
	assert.Equal(t, "c", s.Value(0).Str())

	nullsKept := tbl.Take([]int{1})
	n, _ = nullsKept.Lookup("n")
	assert.True(t, n.Null(0))
}

func TestConcat(t *testing.T) {
	t1, err := rdata.NewTable(rdata.NewInts("a", []int64{1}, nil))
	require.NoError(t, err)
	t2, err := rdata.NewTable(rdata.NewInts("a", []int64{2, 3}, nil))
	require.NoError(t, err)
	out, err := rdata.Concat(t1, t2)
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())
	col, _ := out.Lookup("a")
	assert.Equal(t, int64(3), col.Value(2).Int())

	t3, err := rdata.NewTable(rdata.NewStrings("a", []string{"x"}, nil))
	require.NoError(t, err)
	_, err = rdata.Concat(t1, t3)
	assert.ErrorIs(t, err, rdata.ErrSchemaMismatch)
}

func TestColumnBuilder(t *testing.T) {
	b := rdata.NewColumnBuilder("v", rdata.TypeFloat64)
	require.NoError(t, b.Append(rdata.NewFloat64(1.5)))
	b.AppendNull()
	require.NoError(t, b.Append(rdata.NewFloat64(-2)))
	require.Error(t, b.Append(rdata.NewString("nope")))
	col := b.Build()
	require.Equal(t, 3, col.Len())
	assert.False(t, col.Null(0))
	assert.True(t, col.Null(1))
	assert.Equal(t, -2.0, col.Value(2).Float())
}
