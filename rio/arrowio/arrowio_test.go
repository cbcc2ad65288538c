package arrowio_test

import (
	"bytes"
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/pkg/nano"
	"github.com/dabbsLondon/rdata/rio/arrowio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	in, err := rdata.NewTable(
		rdata.NewInts("id", []int64{1, 2, 3}, nil),
		rdata.NewFloats("score", []float64{1.5, 0, -2.25}, []bool{false, true, false}),
		rdata.NewStrings("name", []string{"ann", "", "cy"}, []bool{false, true, false}),
		rdata.NewBools("active", []bool{true, false, false}, []bool{false, false, true}),
		rdata.NewTimes("when", []nano.Ts{1e9, 2e9, 0}, []bool{false, false, true}),
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, arrowio.Write(&buf, in))
	out, err := arrowio.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, in.NumRows(), out.NumRows())
	require.Equal(t, in.ColumnNames(), out.ColumnNames())
	for j, col := range in.Columns() {
		got := out.Columns()[j]
		assert.Equal(t, col.Type(), got.Type())
		for i := 0; i < in.NumRows(); i++ {
			assert.Equal(t, col.Value(i), got.Value(i), "column %s row %d", col.Name(), i)
		}
	}
}

func TestRoundTripEmpty(t *testing.T) {
	in, err := rdata.NewTable(rdata.NewColumnBuilder("x", rdata.TypeInt64).Build())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, arrowio.Write(&buf, in))
	out, err := arrowio.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumRows())
	assert.Equal(t, []string{"x"}, out.ColumnNames())
	assert.Equal(t, rdata.TypeInt64, out.Columns()[0].Type())
}

func TestRoundTripManyBatches(t *testing.T) {
	values := make([]int64, 2500)
	for i := range values {
		values[i] = int64(i)
	}
	in, err := rdata.NewTable(rdata.NewInts("n", values, nil))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, arrowio.Write(&buf, in))
	out, err := arrowio.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, 2500, out.NumRows())
	col := out.Columns()[0]
	for _, i := range []int{0, 1023, 1024, 2499} {
		assert.Equal(t, int64(i), col.Value(i).Int())
	}
}
