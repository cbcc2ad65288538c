// Package tableio renders tables as aligned text for terminal display.
package tableio

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dabbsLondon/rdata"
)

// Write renders t to w as a column-aligned table with a header row.
// Null cells render as "null".
func Write(w io.Writer, t *rdata.Table) error {
	table := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(table, strings.Join(t.ColumnNames(), "\t"))
	for i := 0; i < t.NumRows(); i++ {
		ss := make([]string, 0, t.NumColumns())
		for _, col := range t.Columns() {
			ss = append(ss, col.Value(i).String())
		}
		fmt.Fprintln(table, strings.Join(ss, "\t"))
	}
	if err := table.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", t.NumRows())
	return err
}
