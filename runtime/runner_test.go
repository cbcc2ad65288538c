package runtime_test

import (
	"context"
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/api/client"
	"github.com/dabbsLondon/rdata/materialize"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/pkg/storage/mock"
	"github.com/dabbsLondon/rdata/runtime"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, inlineMax int64) (*runtime.Runner, storage.Engine) {
	engine := storage.NewLocalEngine()
	dataRoot := storage.MustParseURI(t.TempDir())
	putTable(t, engine, dataRoot.AppendPath("people.parquet"), "parquet")
	loader := runtime.NewLoader(engine, dataRoot, 0)
	conf := materialize.Config{
		ResultsRoot: storage.MustParseURI(t.TempDir()),
		InlineMax:   inlineMax,
	}
	return runtime.NewRunner(engine, loader, conf), engine
}

func TestRunnerInline(t *testing.T) {
	runner, _ := newTestRunner(t, 0)
	script := `
df = pl.read_parquet("people.parquet")
df = df.filter(pl.col("age") > 30)
df = df.sort("age")
`
	out, steps, err := runner.Run(context.Background(), []byte(script), "reqid")
	require.NoError(t, err)
	assert.Equal(t, 3, steps)
	assert.Equal(t, api.OutputInline, out.Kind)
	assert.Equal(t, int64(2), out.RowCount)

	tbl, err := client.InlineTable(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "dave"}, names(t, tbl))
}

func TestRunnerFileOutput(t *testing.T) {
	runner, engine := newTestRunner(t, 1)
	out, steps, err := runner.Run(context.Background(), []byte(`df = pl.read_parquet("people.parquet")`), "reqid")
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
	assert.Equal(t, api.OutputFile, out.Kind)
	assert.Contains(t, out.Path, "output_reqid.arrows")

	u, err := storage.ParseURI(out.Path)
	require.NoError(t, err)
	ok, err := engine.Exists(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunnerParseError(t *testing.T) {
	runner, _ := newTestRunner(t, 0)
	_, steps, err := runner.Run(context.Background(), []byte(`df = pl.read_feather("a.feather")`), "reqid")
	assert.Equal(t, 0, steps)
	var perr *rdata.ParseError
	require.ErrorAs(t, err, &perr)
}

// A script that fails validation must never touch storage; the mock
// engine has no expectations, so any call fails the test.
func TestRunnerValidationErrorNoIO(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine := mock.NewMockEngine(ctrl)
	loader := runtime.NewLoader(engine, storage.MustParseURI(t.TempDir()), 0)
	conf := materialize.Config{ResultsRoot: storage.MustParseURI(t.TempDir())}
	runner := runtime.NewRunner(engine, loader, conf)
	script := `
df = pl.read_parquet("people.parquet")
out = frames.filter(pl.col("age") > 30)
`
	_, steps, err := runner.Run(context.Background(), []byte(script), "reqid")
	assert.Equal(t, 0, steps)
	var verr *rdata.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, verr.Line)
}

func TestRunnerExecutionError(t *testing.T) {
	runner, _ := newTestRunner(t, 0)
	script := `
df = pl.read_parquet("people.parquet")
df = df.filter(pl.col("agee") > 30)
`
	_, steps, err := runner.Run(context.Background(), []byte(script), "reqid")
	assert.Equal(t, 2, steps)
	var xerr *rdata.ExecutionError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, 1, xerr.Step)
}
