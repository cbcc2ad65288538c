package runtime_test

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/pkg/storage"
	"github.com/dabbsLondon/rdata/rio/csvio"
	"github.com/dabbsLondon/rdata/rio/parquetio"
	"github.com/dabbsLondon/rdata/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, maxBytes int64) (*runtime.Loader, storage.Engine, *storage.URI) {
	engine := storage.NewLocalEngine()
	root := storage.MustParseURI(t.TempDir())
	return runtime.NewLoader(engine, root, maxBytes), engine, root
}

func putTable(t *testing.T, engine storage.Engine, u *storage.URI, format string) {
	tbl := people(t)
	var buf bytes.Buffer
	var err error
	if format == "parquet" {
		err = parquetio.Write(&buf, tbl)
	} else {
		err = csvio.Write(&buf, tbl)
	}
	require.NoError(t, err)
	require.NoError(t, storage.Put(context.Background(), engine, u, &buf))
}

func TestLoadParquet(t *testing.T) {
	loader, engine, root := newTestLoader(t, 0)
	putTable(t, engine, root.AppendPath("people.parquet"), "parquet")
	tbl, err := loader.Load(context.Background(), &ast.Load{Loader: "parquet", Path: "people.parquet"})
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.NumRows())
	assert.Equal(t, []string{"name", "age", "city", "balance", "active", "joined"}, tbl.ColumnNames())
}

func TestLoadCSV(t *testing.T) {
	loader, engine, root := newTestLoader(t, 0)
	putTable(t, engine, root.AppendPath("sub", "people.csv"), "csv")
	tbl, err := loader.Load(context.Background(), &ast.Load{Loader: "csv", Path: "sub/people.csv"})
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.NumRows())
	age, ok := tbl.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, rdata.TypeInt64, age.Type())
}

func TestLoadMissing(t *testing.T) {
	loader, _, _ := newTestLoader(t, 0)
	_, err := loader.Load(context.Background(), &ast.Load{Loader: "parquet", Path: "nope.parquet"})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadSizeLimit(t *testing.T) {
	loader, engine, root := newTestLoader(t, 16)
	putTable(t, engine, root.AppendPath("people.csv"), "csv")
	_, err := loader.Load(context.Background(), &ast.Load{Loader: "csv", Path: "people.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "over the 16-byte load limit")
}

func TestResolveRejectsEscapes(t *testing.T) {
	loader, _, _ := newTestLoader(t, 0)
	cases := []struct {
		path string
		want string
	}{
		{"", "empty source path"},
		{"/etc/passwd", `source path "/etc/passwd" must be relative`},
		{`..\..\data`, `source path "..\\..\\data" must be relative`},
		{"../secrets.parquet", `source path "../secrets.parquet" escapes the data directory`},
		{"a/../../b", `source path "a/../../b" escapes the data directory`},
		{".", `source path "." escapes the data directory`},
	}
	for _, c := range cases {
		_, err := loader.Resolve(c.path)
		assert.EqualError(t, err, c.want, "path %q", c.path)
	}
}

func TestResolveCleansWithinRoot(t *testing.T) {
	loader, _, root := newTestLoader(t, 0)
	u, err := loader.Resolve("a/./b/../c.parquet")
	require.NoError(t, err)
	assert.Equal(t, root.AppendPath("a", "c.parquet").String(), u.String())
}
