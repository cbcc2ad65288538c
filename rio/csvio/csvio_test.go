package csvio_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/pkg/nano"
	"github.com/dabbsLondon/rdata/rio/csvio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInference(t *testing.T) {
	const data = `name,age,balance,active,joined
alice,34,1200.5,true,2021-03-04T10:00:00Z
bob,28,-50,false,2021-05-06T12:30:00Z
carol,,0.25,true,
`
	tbl, err := csvio.Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "age", "balance", "active", "joined"}, tbl.ColumnNames())
	want := []rdata.Type{rdata.TypeString, rdata.TypeInt64, rdata.TypeFloat64, rdata.TypeBool, rdata.TypeTime}
	for j, col := range tbl.Columns() {
		assert.Equal(t, want[j], col.Type(), "column %s", col.Name())
	}
	age, _ := tbl.Lookup("age")
	assert.Equal(t, int64(34), age.Value(0).Int())
	assert.True(t, age.Null(2))
	joined, _ := tbl.Lookup("joined")
	assert.Equal(t, nano.TimeToTs(time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC)), joined.Value(0).Time())
	assert.True(t, joined.Null(2))
}

// Bare words must not be mistaken for dates even though date parsers
// accept some of them.
func TestReadMonthNamesStayStrings(t *testing.T) {
	const data = "month\nMay\nJune\nJuly\n"
	tbl, err := csvio.Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, rdata.TypeString, tbl.Columns()[0].Type())
}

func TestReadEmpty(t *testing.T) {
	_, err := csvio.Read(strings.NewReader(""))
	assert.EqualError(t, err, "empty csv file")
}

func TestReadHeaderOnly(t *testing.T) {
	tbl, err := csvio.Read(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
}

func TestRoundTrip(t *testing.T) {
	in, err := rdata.NewTable(
		rdata.NewStrings("name", []string{"ann", "", "cy"}, []bool{false, true, false}),
		rdata.NewInts("id", []int64{1, 2, 3}, nil),
		rdata.NewFloats("score", []float64{1.5, 0, -2.25}, []bool{false, true, false}),
		rdata.NewBools("active", []bool{true, false, false}, []bool{false, false, true}),
		rdata.NewTimes("when", []nano.Ts{1e9, 2e9, 0}, []bool{false, false, true}),
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, csvio.Write(&buf, in))
	out, err := csvio.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, in.NumRows(), out.NumRows())
	require.Equal(t, in.ColumnNames(), out.ColumnNames())
	for j, col := range in.Columns() {
		got := out.Columns()[j]
		assert.Equal(t, col.Type(), got.Type(), "column %s", col.Name())
		for i := 0; i < in.NumRows(); i++ {
			assert.Equal(t, col.Value(i), got.Value(i), "column %s row %d", col.Name(), i)
		}
	}
}
