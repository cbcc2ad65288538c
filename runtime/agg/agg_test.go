package agg_test

import (
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/runtime/agg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runInts aggregates the given ints with the named function; nil marks
// a null input.
func runInts(t *testing.T, name string, vals ...any) rdata.Value {
	f, err := agg.New(name, rdata.TypeInt64)
	require.NoError(t, err)
	for _, v := range vals {
		if v == nil {
			f.Consume(rdata.NullValue(rdata.TypeInt64))
			continue
		}
		f.Consume(rdata.NewInt64(int64(v.(int))))
	}
	return f.Result()
}

func TestNumericAggs(t *testing.T) {
	assert.Equal(t, rdata.NewFloat64(5), runInts(t, "mean", 0, 5, 10))
	assert.Equal(t, rdata.NewFloat64(15), runInts(t, "sum", 0, 5, 10))
	assert.Equal(t, rdata.NewFloat64(0), runInts(t, "min", 10, 0, 5))
	assert.Equal(t, rdata.NewFloat64(10), runInts(t, "max", 0, 10, 5))
}

func TestAggsSkipNulls(t *testing.T) {
	assert.Equal(t, rdata.NewFloat64(7.5), runInts(t, "mean", 5, nil, 10))
	assert.Equal(t, rdata.NewInt64(2), runInts(t, "count", 5, nil, 10))
	assert.Equal(t, rdata.NewFloat64(5), runInts(t, "min", nil, 5))
}

func TestAggsAllNull(t *testing.T) {
	assert.Equal(t, rdata.NullValue(rdata.TypeFloat64), runInts(t, "mean", nil, nil))
	assert.Equal(t, rdata.NullValue(rdata.TypeFloat64), runInts(t, "sum"))
	assert.Equal(t, rdata.NewInt64(0), runInts(t, "count", nil))
	assert.Equal(t, rdata.NewInt64(0), runInts(t, "n_unique"))
}

func TestCountDistinct(t *testing.T) {
	f, err := agg.New("n_unique", rdata.TypeString)
	require.NoError(t, err)
	for _, s := range []string{"london", "paris", "london", "berlin", "paris"} {
		f.Consume(rdata.NewString(s))
	}
	f.Consume(rdata.NullValue(rdata.TypeString))
	assert.Equal(t, rdata.NewInt64(3), f.Result())
}

func TestAggErrors(t *testing.T) {
	_, err := agg.New("mean", rdata.TypeString)
	assert.EqualError(t, err, "mean requires a numeric column, not string")
	_, err = agg.New("count", rdata.TypeString)
	assert.NoError(t, err)
	_, err = agg.New("median", rdata.TypeInt64)
	assert.EqualError(t, err, `unknown aggregation "median"`)
}

func TestResultType(t *testing.T) {
	assert.Equal(t, rdata.TypeInt64, agg.ResultType("count"))
	assert.Equal(t, rdata.TypeInt64, agg.ResultType("n_unique"))
	assert.Equal(t, rdata.TypeFloat64, agg.ResultType("mean"))
	assert.Equal(t, rdata.TypeFloat64, agg.ResultType("sum"))
}
