// Package parquetio reads and writes tables as parquet files.
package parquetio

import (
	"fmt"
	"io"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/pkg/nano"
	goparquet "github.com/fraugster/parquet-go"
	"github.com/fraugster/parquet-go/parquet"
)

// Read loads an entire parquet file into a table.  Row order follows
// the file's row groups.
func Read(rs io.ReadSeeker) (*rdata.Table, error) {
	fr, err := goparquet.NewFileReader(rs)
	if err != nil {
		return nil, err
	}
	children := fr.GetSchemaDefinition().RootColumn.Children
	builders := make([]*rdata.ColumnBuilder, len(children))
	scales := make([]int64, len(children))
	for i, c := range children {
		typ, scale, err := columnType(c.SchemaElement)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.SchemaElement.Name, err)
		}
		builders[i] = rdata.NewColumnBuilder(c.SchemaElement.Name, typ)
		scales[i] = scale
	}
	for {
		row, err := fr.NextRow()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		for i, c := range children {
			if err := appendValue(builders[i], scales[i], row[c.SchemaElement.Name]); err != nil {
				return nil, fmt.Errorf("column %q: %w", c.SchemaElement.Name, err)
			}
		}
	}
	cols := make([]rdata.Column, len(builders))
	for i, b := range builders {
		cols[i] = b.Build()
	}
	return rdata.NewTable(cols...)
}

// columnType maps a parquet schema element to a column type.  The
// returned scale converts stored timestamps to nanoseconds and is zero
// for everything else.
func columnType(se *parquet.SchemaElement) (rdata.Type, int64, error) {
	if se.Type == nil {
		return 0, 0, fmt.Errorf("nested types unsupported")
	}
	switch *se.Type {
	case parquet.Type_BOOLEAN:
		return rdata.TypeBool, 0, nil
	case parquet.Type_INT32:
		return rdata.TypeInt64, 0, nil
	case parquet.Type_INT64:
		if scale := timestampScale(se); scale != 0 {
			return rdata.TypeTime, scale, nil
		}
		return rdata.TypeInt64, 0, nil
	case parquet.Type_FLOAT, parquet.Type_DOUBLE:
		return rdata.TypeFloat64, 0, nil
	case parquet.Type_BYTE_ARRAY:
		return rdata.TypeString, 0, nil
	}
	return 0, 0, fmt.Errorf("unsupported parquet type %s", se.Type)
}

func timestampScale(se *parquet.SchemaElement) int64 {
	if se.IsSetLogicalType() && se.LogicalType.IsSetTIMESTAMP() {
		switch unit := se.LogicalType.TIMESTAMP.Unit; {
		case unit.IsSetMILLIS():
			return 1_000_000
		case unit.IsSetMICROS():
			return 1000
		default:
			return 1
		}
	}
	if se.IsSetConvertedType() {
		switch *se.ConvertedType {
		case parquet.ConvertedType_TIMESTAMP_MILLIS:
			return 1_000_000
		case parquet.ConvertedType_TIMESTAMP_MICROS:
			return 1000
		}
	}
	return 0
}

func appendValue(b *rdata.ColumnBuilder, scale int64, v any) error {
	switch v := v.(type) {
	case nil:
		b.AppendNull()
		return nil
	case bool:
		return b.Append(rdata.NewBool(v))
	case int32:
		return b.Append(rdata.NewInt64(int64(v)))
	case int64:
		if scale != 0 {
			return b.Append(rdata.NewTime(nano.Ts(v * scale)))
		}
		return b.Append(rdata.NewInt64(v))
	case float32:
		return b.Append(rdata.NewFloat64(float64(v)))
	case float64:
		return b.Append(rdata.NewFloat64(v))
	case []byte:
		return b.Append(rdata.NewString(string(v)))
	}
	return fmt.Errorf("unsupported parquet value %T", v)
}
