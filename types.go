// Package rdata provides the columnar table model shared by the script
// compiler, the execution engine, and the format readers and writers.
// Tables are immutable once constructed: every operation produces a new
// Table rather than modifying one in place.
package rdata

// Type identifies the primitive type of a column or scalar value.  The set
// is closed; execution dispatches with total switches over these values.
type Type int

const (
	TypeBool Type = iota
	TypeInt64
	TypeFloat64
	TypeString
	TypeTime
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeTime:
		return "time"
	}
	return "unknown"
}

// IsNumeric reports whether t is an arithmetic type.
func (t Type) IsNumeric() bool {
	return t == TypeInt64 || t == TypeFloat64
}
