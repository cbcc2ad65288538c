package runtime_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterComparisons(t *testing.T) {
	cases := []struct {
		cond string
		want []string
	}{
		{`pl.col("age") == 28`, []string{"bob", "erin"}},
		{`pl.col("age") != 28`, []string{"alice", "dave"}},
		{`pl.col("age") < 30`, []string{"bob", "erin"}},
		{`pl.col("age") <= 28`, []string{"bob", "erin"}},
		{`pl.col("age") >= 34`, []string{"alice", "dave"}},
		{`pl.col("age") > 100`, nil},
	}
	for _, c := range cases {
		t.Run(c.cond, func(t *testing.T) {
			out, err := run(t, fmt.Sprintf(`
df = pl.read_parquet("people.parquet")
out = df.filter(%s)
`, c.cond))
			require.NoError(t, err)
			assert.Equal(t, c.want, names(t, out))
		})
	}
}

func TestFilterNumericCoercion(t *testing.T) {
	// Int literal against a float column and float literal against an
	// int column both compare numerically.
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("balance") > 0)
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol", "dave"}, names(t, out))

	out, err = run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("age") > 30.5)
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "dave"}, names(t, out))
}

func TestFilterString(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("city") == "paris")
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "erin"}, names(t, out))
}

func TestFilterBool(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("active") == True)
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, names(t, out))
}

func TestFilterTime(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("joined") > "2021-01-01")
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol", "erin"}, names(t, out))
}

func TestFilterBadTimeLiteral(t *testing.T) {
	_, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("joined") == "not a date")
`)
	assert.EqualError(t, err, `execution error at step 1: cannot parse "not a date" as a time for column "joined"`)
}

func TestFilterTypeMismatch(t *testing.T) {
	_, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("name") > 5)
`)
	assert.EqualError(t, err, `execution error at step 1: cannot compare string column "name" to int64 literal`)
}
