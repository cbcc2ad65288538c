// Package arrowio reads and writes tables in the Arrow IPC stream
// format, the engine's result encoding.
package arrowio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/dabbsLondon/rdata"
)

const recordBatchSize = 1024

// Write writes t to w as one Arrow IPC stream.  An empty table still
// produces a stream with the schema and a single zero-row batch.
func Write(w io.Writer, t *rdata.Table) error {
	schema, err := newSchema(t)
	if err != nil {
		return err
	}
	writer := ipc.NewWriter(w, ipc.WithSchema(schema))
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	nrows := t.NumRows()
	for start := 0; ; start += recordBatchSize {
		end := start + recordBatchSize
		if end > nrows {
			end = nrows
		}
		for j, col := range t.Columns() {
			appendRange(builder.Field(j), col, start, end)
		}
		rec := builder.NewRecord()
		err := writer.Write(rec)
		rec.Release()
		if err != nil {
			writer.Close()
			return err
		}
		if end >= nrows {
			break
		}
	}
	return writer.Close()
}

func newSchema(t *rdata.Table) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, t.NumColumns())
	for _, col := range t.Columns() {
		dt, err := newArrowDataType(col.Type())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
		fields = append(fields, arrow.Field{Name: col.Name(), Type: dt, Nullable: true})
	}
	return arrow.NewSchema(fields, nil), nil
}

func newArrowDataType(typ rdata.Type) (arrow.DataType, error) {
	switch typ {
	case rdata.TypeBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case rdata.TypeInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case rdata.TypeFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case rdata.TypeString:
		return arrow.BinaryTypes.String, nil
	case rdata.TypeTime:
		return arrow.FixedWidthTypes.Timestamp_ns, nil
	}
	return nil, fmt.Errorf("unsupported type %s", typ)
}

func appendRange(b array.Builder, col rdata.Column, start, end int) {
	for i := start; i < end; i++ {
		if col.Null(i) {
			b.AppendNull()
			continue
		}
		v := col.Value(i)
		switch b := b.(type) {
		case *array.BooleanBuilder:
			b.Append(v.Bool())
		case *array.Int64Builder:
			b.Append(v.Int())
		case *array.Float64Builder:
			b.Append(v.Float())
		case *array.StringBuilder:
			b.Append(v.Str())
		case *array.TimestampBuilder:
			b.Append(arrow.Timestamp(v.Time()))
		}
	}
}
