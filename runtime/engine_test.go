package runtime_test

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/pkg/nano"
	"github.com/dabbsLondon/rdata/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	tables map[string]*rdata.Table
}

func (l *stubLoader) Load(_ context.Context, load *ast.Load) (*rdata.Table, error) {
	if t, ok := l.tables[load.Path]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%s: %w", load.Path, fs.ErrNotExist)
}

func ts(s string) nano.Ts {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return nano.TimeToTs(t)
}

// people returns the fixture most tests run against: five rows with one
// null somewhere in every column except name.
func people(t *testing.T) *rdata.Table {
	tbl, err := rdata.NewTable(
		rdata.NewStrings("name", []string{"alice", "bob", "carol", "dave", "erin"}, nil),
		rdata.NewInts("age", []int64{34, 28, 0, 45, 28}, []bool{false, false, true, false, false}),
		rdata.NewStrings("city", []string{"london", "paris", "london", "", "paris"}, []bool{false, false, false, true, false}),
		rdata.NewFloats("balance", []float64{1200.5, -50, 0.25, 1000, 0}, []bool{false, false, false, false, true}),
		rdata.NewBools("active", []bool{true, false, true, false, false}, []bool{false, false, false, false, true}),
		rdata.NewTimes("joined", []nano.Ts{ts("2021-03-04"), ts("2020-01-15"), ts("2022-07-01"), 0, ts("2021-11-30")}, []bool{false, false, false, true, false}),
	)
	require.NoError(t, err)
	return tbl
}

func run(t *testing.T, src string) (*rdata.Table, error) {
	plan, err := compiler.Compile(src)
	require.NoError(t, err)
	loader := &stubLoader{tables: map[string]*rdata.Table{"people.parquet": people(t)}}
	return runtime.NewEngine(loader).Run(context.Background(), plan)
}

// names returns the name column as a slice, the usual way these tests
// assert on which rows survived.
func names(t *testing.T, tbl *rdata.Table) []string {
	col, ok := tbl.Lookup("name")
	require.True(t, ok)
	var out []string
	for i := 0; i < col.Len(); i++ {
		out = append(out, col.Value(i).String())
	}
	return out
}

func TestRunPipeline(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
grown = df.filter(pl.col("age") > 30)
out = grown.select(["name", "age"])
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, out.ColumnNames())
	assert.Equal(t, []string{"alice", "dave"}, names(t, out))
}

func TestRunUsesLatestBinding(t *testing.T) {
	out, err := run(t, `
df = pl.read_parquet("people.parquet")
df = df.filter(pl.col("city") == "london")
out = df.select(["name"])
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, names(t, out))
}

func TestRunStepIndex(t *testing.T) {
	_, err := run(t, `
df = pl.read_parquet("people.parquet")
out = df.filter(pl.col("agee") > 30)
`)
	require.Error(t, err)
	var execErr *rdata.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.Step)
	assert.EqualError(t, err, `execution error at step 1: column "agee" not found (did you mean "age"?)`)
}

func TestRunSourceNotFound(t *testing.T) {
	_, err := run(t, `df = pl.read_parquet("missing.parquet")`)
	require.Error(t, err)
	var execErr *rdata.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 0, execErr.Step)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunCanceled(t *testing.T) {
	plan, err := compiler.Compile(`df = pl.read_parquet("people.parquet")`)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := &stubLoader{tables: map[string]*rdata.Table{"people.parquet": people(t)}}
	_, err = runtime.NewEngine(loader).Run(ctx, plan)
	assert.ErrorIs(t, err, context.Canceled)
}
