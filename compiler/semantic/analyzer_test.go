package semantic_test

import (
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/parser"
	"github.com/dabbsLondon/rdata/compiler/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeResolvesInputs(t *testing.T) {
	stmts, err := parser.Parse(`
df = pl.read_parquet("accounts.parquet")
df = df.filter(pl.col("age") > 30)
out = df.select("name")
`)
	require.NoError(t, err)
	plan, err := semantic.Analyze(stmts)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 3)
	assert.Equal(t, -1, plan.Steps[0].Input)
	assert.Equal(t, 0, plan.Steps[1].Input, "reassigned df reads the load")
	assert.Equal(t, 1, plan.Steps[2].Input, "out reads the filtered df")
}

func TestAnalyzeErrors(t *testing.T) {
	cases := []struct {
		script string
		line   int
		msg    string
	}{
		{`out = df.select("name")`, 1,
			`undefined variable "df"`},
		{"df = pl.read_parquet(\"a.parquet\")\nout = fd.select(\"name\")", 2,
			`undefined variable "fd" (did you mean "df"?)`},
		{"adults = pl.read_parquet(\"a.parquet\")\nout = adult.select(\"name\")", 2,
			`undefined variable "adult" (did you mean "adults"?)`},
		{"df = pl.read_parquet(\"a.parquet\")\ng = df.groupby([\"city\"])", 2,
			"groupby requires at least one aggregation"},
		{"df = pl.read_parquet(\"a.parquet\")\ng = df.groupby([\"city\"]).agg(pl.col(\"age\").median())", 2,
			`unknown aggregation "median" (did you mean "mean"?)`},
		{"df = pl.read_parquet(\"a.parquet\")\ng = df.groupby([\"city\"]).agg(pl.col(\"age\").mean(), pl.col(\"age\").mean())", 2,
			`duplicate output column "age_mean"`},
		{"df = pl.read_parquet(\"a.parquet\")\nout = df.select([\"name\", \"name\"])", 2,
			`duplicate column "name" in select`},
		{"df = pl.read_parquet(\"a.parquet\")\nf = df.filter(pl.col(\"active\") >= True)", 2,
			"cannot use >= to compare a boolean"},
		{`df = pl.read_parquet("")`, 1,
			"empty source path"},
		{"# nothing to do", 1,
			"empty script"},
	}
	for _, c := range cases {
		stmts, err := parser.Parse(c.script)
		require.NoError(t, err, c.script)
		_, err = semantic.Analyze(stmts)
		require.Error(t, err, c.script)
		var verr *rdata.ValidationError
		require.ErrorAs(t, err, &verr, c.script)
		assert.Equal(t, c.line, verr.Line, c.script)
		assert.Equal(t, c.msg, verr.Message, c.script)
	}
}

func TestAnalyzeUsesLatestBinding(t *testing.T) {
	stmts, err := parser.Parse(`
a = pl.read_parquet("one.parquet")
b = a.select("name")
a = pl.read_csv("two.csv")
c = a.select("name")
`)
	require.NoError(t, err)
	plan, err := semantic.Analyze(stmts)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 4)
	assert.Equal(t, 0, plan.Steps[1].Input)
	assert.Equal(t, 2, plan.Steps[3].Input, "c reads the csv load, not the parquet one")
}
