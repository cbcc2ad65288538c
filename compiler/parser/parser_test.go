package parser

import (
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	script := `# load the accounts fixture
df = pl.read_parquet("accounts.parquet")

adults = df.filter(pl.col("age") >= 30)
out = adults.select(["name", "age"])
`
	stmts, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	require.IsType(t, &ast.Load{}, stmts[0].Op)
	load := stmts[0].Op.(*ast.Load)
	assert.Equal(t, "df", stmts[0].Name)
	assert.Equal(t, "", stmts[0].Source)
	assert.Equal(t, "parquet", load.Loader)
	assert.Equal(t, "accounts.parquet", load.Path)
	assert.Equal(t, 2, stmts[0].Line)

	filter := stmts[1].Op.(*ast.Filter)
	assert.Equal(t, "df", stmts[1].Source)
	assert.Equal(t, "age", filter.Cond.Column)
	assert.Equal(t, ">=", filter.Cond.Op)
	assert.Equal(t, rdata.NewInt64(30), filter.Cond.Value)
	assert.Equal(t, 4, stmts[1].Line)

	sel := stmts[2].Op.(*ast.Select)
	assert.Equal(t, []string{"name", "age"}, sel.Columns)
}

func TestParseFilterLiterals(t *testing.T) {
	cases := []struct {
		src  string
		op   string
		want rdata.Value
	}{
		{`f = df.filter(pl.col("age") > 30)`, ">", rdata.NewInt64(30)},
		{`f = df.filter(pl.col("balance") <= -12.5)`, "<=", rdata.NewFloat64(-12.5)},
		{`f = df.filter(pl.col("city") == "London")`, "==", rdata.NewString("London")},
		{`f = df.filter(pl.col("active") != False)`, "!=", rdata.NewBool(false)},
		{`f = df.filter(pl.col("signup") < "2021-03-05T14:30:00Z")`, "<", rdata.NewString("2021-03-05T14:30:00Z")},
	}
	for _, c := range cases {
		stmts, err := Parse(c.src)
		require.NoError(t, err, c.src)
		f := stmts[0].Op.(*ast.Filter)
		assert.Equal(t, c.op, f.Cond.Op, c.src)
		assert.Equal(t, c.want, f.Cond.Value, c.src)
	}
}

func TestParseGroupBy(t *testing.T) {
	stmts, err := Parse(`stats = df.groupby(["city"]).agg(pl.col("balance").mean(), pl.col("age").max())`)
	require.NoError(t, err)
	g := stmts[0].Op.(*ast.GroupBy)
	assert.Equal(t, []string{"city"}, g.Keys)
	require.Len(t, g.Aggs, 2)
	assert.Equal(t, ast.AggExpr{Column: "balance", Func: "mean"}, g.Aggs[0])
	assert.Equal(t, ast.AggExpr{Column: "age", Func: "max"}, g.Aggs[1])

	stmts, err = Parse(`stats = df.groupby("city").agg(pl.col("age").count())`)
	require.NoError(t, err)
	g = stmts[0].Op.(*ast.GroupBy)
	assert.Equal(t, []string{"city"}, g.Keys)

	// A bare agg aggregates the whole frame.
	stmts, err = Parse(`total = df.agg(pl.col("balance").sum())`)
	require.NoError(t, err)
	g = stmts[0].Op.(*ast.GroupBy)
	assert.Nil(t, g.Keys)
	require.Len(t, g.Aggs, 1)

	// groupby without .agg parses; validation rejects it later.
	stmts, err = Parse(`grouped = df.groupby(["city"])`)
	require.NoError(t, err)
	assert.Empty(t, stmts[0].Op.(*ast.GroupBy).Aggs)
}

func TestParseSort(t *testing.T) {
	stmts, err := Parse(`s = df.sort("age")`)
	require.NoError(t, err)
	assert.Equal(t, []ast.SortKey{{Column: "age"}}, stmts[0].Op.(*ast.Sort).Keys)

	stmts, err = Parse(`s = df.sort(["a", "b"], descending=[True, False])`)
	require.NoError(t, err)
	assert.Equal(t, []ast.SortKey{{Column: "a", Descending: true}, {Column: "b"}}, stmts[0].Op.(*ast.Sort).Keys)

	// A single boolean applies to every key.
	stmts, err = Parse(`s = df.sort(["a", "b"], descending=True)`)
	require.NoError(t, err)
	assert.Equal(t, []ast.SortKey{{Column: "a", Descending: true}, {Column: "b", Descending: true}}, stmts[0].Op.(*ast.Sort).Keys)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		script string
		line   int
		msg    string
	}{
		{"df = pl.read_parquet(\"a.parquet\")\nx = df.filtr(pl.col(\"age\") > 1)", 2, `unknown operation "filtr" (did you mean "filter"?)`},
		{`pl = pl.read_parquet("a.parquet")`, 1, `cannot assign to reserved name "pl"`},
		{`df = pl.read_feather("a.feather")`, 1, `unknown loader "pl.read_feather"`},
		{`x = df.select()`, 1, `expected '[', found ")"`},
		{`x = df.sort(["a", "b"], descending=[True])`, 1, "descending has 1 values for 2 sort keys"},
		{`x = df.filter(pl.col("age") > 30) extra`, 1, `unexpected "extra" after statement`},
		{`x = df.agg()`, 1, "agg requires at least one aggregation expression"},
		{`x = df.filter(col("age") > 30)`, 1, `expected pl.col(...), found "col"`},
		{`x = df.groupby(["city"]).sort("age")`, 1, `expected agg(...) after groupby, found "sort"`},
		{"df = pl.read_parquet(\"a.parquet\")\n\nx = df.filter(pl.col(\"age\") @ 30)", 3, `unexpected character "@" at column 29`},
	}
	for _, c := range cases {
		_, err := Parse(c.script)
		require.Error(t, err, c.script)
		var perr *rdata.ParseError
		require.ErrorAs(t, err, &perr, c.script)
		assert.Equal(t, c.line, perr.Line, c.script)
		assert.Contains(t, perr.Message, c.msg, c.script)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("df = pl.read_parquet(\"a.parquet\")\nx = df.filtr(pl.col(\"age\") > 1)")
	assert.EqualError(t, err, `parse error at line 2: unknown operation "filtr" (did you mean "filter"?)`)
}

func TestParseEmptyScript(t *testing.T) {
	stmts, err := Parse("\n# only comments\n\n")
	require.NoError(t, err)
	assert.Empty(t, stmts)
}
