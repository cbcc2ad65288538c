package parquetio

import (
	"io"

	"github.com/dabbsLondon/rdata"
	goparquet "github.com/fraugster/parquet-go"
)

// Write writes t to w as one parquet file.  Nulls become missing
// optional values.
func Write(w io.Writer, t *rdata.Table) error {
	sd, err := newSchemaDefinition(t)
	if err != nil {
		return err
	}
	fw := goparquet.NewFileWriter(w, goparquet.WithSchemaDefinition(sd))
	cols := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		row := make(map[string]interface{}, len(cols))
		for _, c := range cols {
			if c.Null(i) {
				continue
			}
			row[c.Name()] = parquetValue(c.Value(i))
		}
		if err := fw.AddData(row); err != nil {
			return err
		}
	}
	return fw.Close()
}

func parquetValue(v rdata.Value) interface{} {
	switch v.Type() {
	case rdata.TypeBool:
		return v.Bool()
	case rdata.TypeInt64:
		return v.Int()
	case rdata.TypeFloat64:
		return v.Float()
	case rdata.TypeTime:
		return int64(v.Time())
	default:
		return []byte(v.Str())
	}
}
