package tableio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/rio/tableio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tbl, err := rdata.NewTable(
		rdata.NewStrings("name", []string{"ann", "bo"}, nil),
		rdata.NewInts("age", []int64{34, 0}, []bool{false, true}),
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tableio.Write(&buf, tbl))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"name", "age"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"ann", "34"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"bo", "null"}, strings.Fields(lines[2]))
	assert.Equal(t, "(2 rows)", lines[3])
}
