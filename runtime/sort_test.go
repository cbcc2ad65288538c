package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSingleKey(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.sort("age")
`)
	require.NoError(t, err)
	// bob and erin tie at 28 and keep their input order; carol's null
	// age sorts last.
	assert.Equal(t, []string{"bob", "erin", "alice", "dave", "carol"}, names(t, out))
}

func TestSortDescending(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.sort("age", descending=True)
`)
	require.NoError(t, err)
	// Nulls sort last under either direction.
	assert.Equal(t, []string{"dave", "alice", "bob", "erin", "carol"}, names(t, out))
}

func TestSortMultiKey(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.sort(["city", "age"], descending=[False, True])
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol", "bob", "erin", "dave"}, names(t, out))
}

func TestSortBroadcastDescending(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.sort(["city", "age"], descending=True)
`)
	require.NoError(t, err)
	// paris before london, dave's null city still last.
	assert.Equal(t, []string{"bob", "erin", "alice", "carol", "dave"}, names(t, out))
}

func TestSortPreservesColumns(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.sort("name")
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city", "balance", "active", "joined"}, out.ColumnNames())
	age, ok := out.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, int64(34), age.Value(0).Int())
}
