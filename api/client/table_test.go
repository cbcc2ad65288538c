package client

import (
	"bytes"
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/api"
	"github.com/dabbsLondon/rdata/rio/arrowio"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineTable(t *testing.T) {
	tbl, err := rdata.NewTable(rdata.NewStrings("name", []string{"alice", "bob"}, nil))
	require.NoError(t, err)
	var raw bytes.Buffer
	require.NoError(t, arrowio.Write(&raw, tbl))
	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	_, err = zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := InlineTable(&api.Output{
		Kind:        api.OutputInline,
		Data:        compressed.Bytes(),
		ContentType: api.MediaTypeArrowsLZ4,
	})
	require.NoError(t, err)
	require.Equal(t, 2, got.NumRows())
	col, ok := got.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "bob", col.Value(1).String())

	got, err = InlineTable(&api.Output{
		Kind:        api.OutputInline,
		Data:        raw.Bytes(),
		ContentType: api.MediaTypeArrows,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumRows())

	_, err = InlineTable(&api.Output{Kind: api.OutputFile, Path: "results/output_x.arrows"})
	assert.EqualError(t, err, "output is not inline")
	_, err = InlineTable(&api.Output{Kind: api.OutputInline, ContentType: "text/csv"})
	assert.EqualError(t, err, `unsupported output content type "text/csv"`)
}
