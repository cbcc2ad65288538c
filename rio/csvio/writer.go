package csvio

import (
	"encoding/csv"
	"io"

	"github.com/dabbsLondon/rdata"
)

// Write writes t as CSV with a header row.  Nulls become empty fields.
func Write(w io.Writer, t *rdata.Table) error {
	enc := csv.NewWriter(w)
	if err := enc.Write(t.ColumnNames()); err != nil {
		return err
	}
	cols := t.Columns()
	fields := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range cols {
			if c.Null(i) {
				fields[j] = ""
				continue
			}
			fields[j] = c.Value(i).String()
		}
		if err := enc.Write(fields); err != nil {
			return err
		}
	}
	enc.Flush()
	return enc.Error()
}
