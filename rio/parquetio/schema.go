package parquetio

import (
	"github.com/dabbsLondon/rdata"
	"github.com/fraugster/parquet-go/parquet"
	"github.com/fraugster/parquet-go/parquetschema"
)

var (
	repetitionOptional = parquet.FieldRepetitionTypePtr(parquet.FieldRepetitionType_OPTIONAL)

	convertedUTF8  = parquet.ConvertedTypePtr(parquet.ConvertedType_UTF8)
	convertedInt64 = parquet.ConvertedTypePtr(parquet.ConvertedType_INT_64)

	logicalString         = &parquet.LogicalType{STRING: &parquet.StringType{}}
	logicalInt64          = &parquet.LogicalType{INTEGER: &parquet.IntType{BitWidth: 64, IsSigned: true}}
	logicalTimestampNanos = &parquet.LogicalType{TIMESTAMP: &parquet.TimestampType{Unit: timeUnitNanos}}

	timeUnitNanos = &parquet.TimeUnit{NANOS: &parquet.NanoSeconds{}}
)

func newSchemaDefinition(t *rdata.Table) (*parquetschema.SchemaDefinition, error) {
	children := make([]*parquetschema.ColumnDefinition, 0, t.NumColumns())
	for _, c := range t.Columns() {
		children = append(children, newColumnDefinition(c.Name(), c.Type()))
	}
	s := &parquetschema.SchemaDefinition{
		RootColumn: &parquetschema.ColumnDefinition{
			Children: children,
			SchemaElement: &parquet.SchemaElement{
				Name: "rdata",
			},
		},
	}
	return s, s.ValidateStrict()
}

func newColumnDefinition(name string, typ rdata.Type) *parquetschema.ColumnDefinition {
	switch typ {
	case rdata.TypeBool:
		return newPrimitiveColumnDefinition(name, parquet.Type_BOOLEAN, nil, nil)
	case rdata.TypeInt64:
		return newPrimitiveColumnDefinition(name, parquet.Type_INT64, convertedInt64, logicalInt64)
	case rdata.TypeFloat64:
		return newPrimitiveColumnDefinition(name, parquet.Type_DOUBLE, nil, nil)
	case rdata.TypeTime:
		return newPrimitiveColumnDefinition(name, parquet.Type_INT64, nil, logicalTimestampNanos)
	default:
		return newPrimitiveColumnDefinition(name, parquet.Type_BYTE_ARRAY, convertedUTF8, logicalString)
	}
}

func newPrimitiveColumnDefinition(name string, t parquet.Type, c *parquet.ConvertedType, l *parquet.LogicalType) *parquetschema.ColumnDefinition {
	return &parquetschema.ColumnDefinition{
		SchemaElement: &parquet.SchemaElement{
			Type:           parquet.TypePtr(t),
			RepetitionType: repetitionOptional,
			Name:           name,
			ConvertedType:  c,
			LogicalType:    l,
		},
	}
}
