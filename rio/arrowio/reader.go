package arrowio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/pkg/nano"
)

// Read loads an entire Arrow IPC stream from r into a table.
func Read(r io.Reader) (*rdata.Table, error) {
	rr, err := ipc.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rr.Release()
	schema := rr.Schema()
	builders := make([]*rdata.ColumnBuilder, len(schema.Fields()))
	for i, f := range schema.Fields() {
		typ, err := columnType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
		builders[i] = rdata.NewColumnBuilder(f.Name, typ)
	}
	for rr.Next() {
		rec := rr.Record()
		for j, b := range builders {
			if err := appendArrow(b, rec.Column(j)); err != nil {
				return nil, fmt.Errorf("column %q: %w", schema.Field(j).Name, err)
			}
		}
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}
	cols := make([]rdata.Column, len(builders))
	for i, b := range builders {
		cols[i] = b.Build()
	}
	return rdata.NewTable(cols...)
}

func columnType(dt arrow.DataType) (rdata.Type, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return rdata.TypeBool, nil
	case arrow.INT64:
		return rdata.TypeInt64, nil
	case arrow.FLOAT64:
		return rdata.TypeFloat64, nil
	case arrow.STRING:
		return rdata.TypeString, nil
	case arrow.TIMESTAMP:
		return rdata.TypeTime, nil
	}
	return 0, fmt.Errorf("unsupported arrow type %s", dt)
}

func appendArrow(b *rdata.ColumnBuilder, arr arrow.Array) error {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			b.AppendNull()
			continue
		}
		var v rdata.Value
		switch arr := arr.(type) {
		case *array.Boolean:
			v = rdata.NewBool(arr.Value(i))
		case *array.Int64:
			v = rdata.NewInt64(arr.Value(i))
		case *array.Float64:
			v = rdata.NewFloat64(arr.Value(i))
		case *array.String:
			v = rdata.NewString(arr.Value(i))
		case *array.Timestamp:
			v = rdata.NewTime(timestampNanos(arr, i))
		default:
			return fmt.Errorf("unsupported arrow array %s", arr.DataType())
		}
		if err := b.Append(v); err != nil {
			return err
		}
	}
	return nil
}

func timestampNanos(arr *array.Timestamp, i int) nano.Ts {
	ts := int64(arr.Value(i))
	switch arr.DataType().(*arrow.TimestampType).Unit {
	case arrow.Second:
		return nano.Ts(ts * 1_000_000_000)
	case arrow.Millisecond:
		return nano.Ts(ts * 1_000_000)
	case arrow.Microsecond:
		return nano.Ts(ts * 1000)
	}
	return nano.Ts(ts)
}
