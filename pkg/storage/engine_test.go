package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeker(t *testing.T) {
	r := NewBytesReader([]byte{0, 1})
	s, err := NewSeeker(r)
	require.NoError(t, err)

	// Test that ReadAt doesn't affect the offset.
	b := make([]byte, 3)
	n, err := s.ReadAt(b, 1)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 1, b[0])
	n64, err := s.Seek(0, io.SeekCurrent)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, n64)

	// Test Read followed by Seek to the beginning.
	for i := 0; i < 3; i++ {
		n, err = s.Read(b)
		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.EqualValues(t, 0, b[0])
		assert.EqualValues(t, 1, b[1])
		n64, err = s.Seek(0, io.SeekStart)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, n64)
	}
}

func TestFileSystem(t *testing.T) {
	engine := NewLocalEngine()
	ctx := context.Background()
	dir := MustParseURI(t.TempDir())
	u := dir.AppendPath("sub", "data.csv")

	ok, err := engine.Exists(ctx, u)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = engine.Get(ctx, u)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Put creates intermediate directories.
	require.NoError(t, Put(ctx, engine, u, strings.NewReader("a,b\n1,2\n")))
	ok, err = engine.Exists(ctx, u)
	require.NoError(t, err)
	assert.True(t, ok)
	size, err := engine.Size(ctx, u)
	require.NoError(t, err)
	assert.EqualValues(t, 8, size)

	b, err := Get(ctx, engine, u)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(b))

	infos, err := engine.List(ctx, dir.AppendPath("sub"))
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, Info{Name: "data.csv", Size: 8}, infos[0])

	require.NoError(t, engine.Delete(ctx, u))
	ok, err = engine.Exists(ctx, u)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileSystemGetSeeker(t *testing.T) {
	engine := NewLocalEngine()
	ctx := context.Background()
	u := MustParseURI(filepath.Join(t.TempDir(), "f"))
	require.NoError(t, Put(ctx, engine, u, strings.NewReader("abcdef")))
	r, err := engine.Get(ctx, u)
	require.NoError(t, err)
	defer r.Close()
	s, err := NewSeeker(r)
	require.NoError(t, err)
	_, err = s.Seek(3, io.SeekStart)
	require.NoError(t, err)
	b, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "def", string(b))
}

func TestRouterRejectsDisabledScheme(t *testing.T) {
	// An unrecognized scheme parses as a file path.
	u, err := ParseURI("ftp://example.com/data")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(FileScheme))

	router := NewRouter()
	router.Enable(S3Scheme)
	_, err = router.Get(context.Background(), u)
	assert.EqualError(t, err, `scheme not enabled: "file"`)
}

func TestParseURI(t *testing.T) {
	u, err := ParseURI("s3://bucket/key/file.parquet")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(S3Scheme))
	assert.Equal(t, "s3://bucket/key/file.parquet", u.String())

	u, err = ParseURI("/abs/path/file.csv")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(FileScheme))
	assert.Equal(t, filepath.FromSlash("/abs/path/file.csv"), u.Filepath())

	u, err = ParseURI("")
	require.NoError(t, err)
	assert.True(t, u.IsZero())
}
