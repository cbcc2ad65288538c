package rdata

import (
	"math"
	"strconv"
	"strings"

	"github.com/dabbsLondon/rdata/pkg/nano"
)

// Value is a single scalar tagged with its Type.  Numeric, boolean, and
// time payloads share one word; strings are held separately.  Values are
// passed by value and never mutated.
type Value struct {
	typ  Type
	null bool
	num  uint64
	str  string
}

func NewBool(b bool) Value {
	var num uint64
	if b {
		num = 1
	}
	return Value{typ: TypeBool, num: num}
}

func NewInt64(i int64) Value {
	return Value{typ: TypeInt64, num: uint64(i)}
}

func NewFloat64(f float64) Value {
	return Value{typ: TypeFloat64, num: math.Float64bits(f)}
}

func NewString(s string) Value {
	return Value{typ: TypeString, str: s}
}

func NewTime(ts nano.Ts) Value {
	return Value{typ: TypeTime, num: uint64(ts)}
}

// NullValue returns the null value of the given type.
func NullValue(typ Type) Value {
	return Value{typ: typ, null: true}
}

func (v Value) Type() Type { return v.typ }
func (v Value) IsNull() bool { return v.null }

func (v Value) Bool() bool { return v.num != 0 }
func (v Value) Int() int64 { return int64(v.num) }
func (v Value) Float() float64 { return math.Float64frombits(v.num) }
func (v Value) Str() string { return v.str }
func (v Value) Time() nano.Ts { return nano.Ts(v.num) }

// AsFloat returns the value widened to float64.  It is only meaningful for
// numeric values.
func (v Value) AsFloat() float64 {
	if v.typ == TypeInt64 {
		return float64(v.Int())
	}
	return v.Float()
}

// String renders the value for display.  Nulls render as "null"; callers
// that need a different null spelling (e.g., an empty CSV cell) check
// IsNull first.
func (v Value) String() string {
	if v.null {
		return "null"
	}
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.Bool())
	case TypeInt64:
		return strconv.FormatInt(v.Int(), 10)
	case TypeFloat64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case TypeString:
		return v.str
	case TypeTime:
		return v.Time().String()
	}
	return "unknown"
}

// Compare defines a total order over values: nulls sort after non-nulls,
// int64 and float64 compare numerically with each other, and values of
// different type classes order by type tag so mixed inputs still sort
// deterministically.
func Compare(a, b Value) int {
	if a.null || b.null {
		switch {
		case a.null && b.null:
			return 0
		case a.null:
			return 1
		default:
			return -1
		}
	}
	if a.typ.IsNumeric() && b.typ.IsNumeric() {
		if a.typ == TypeInt64 && b.typ == TypeInt64 {
			return compareOrdered(a.Int(), b.Int())
		}
		return compareOrdered(a.AsFloat(), b.AsFloat())
	}
	if a.typ != b.typ {
		return compareOrdered(a.typ, b.typ)
	}
	switch a.typ {
	case TypeBool:
		return compareOrdered(btoi(a.Bool()), btoi(b.Bool()))
	case TypeString:
		return strings.Compare(a.str, b.str)
	case TypeTime:
		return compareOrdered(a.Time(), b.Time())
	}
	return 0
}

func compareOrdered[T int | int64 | float64 | Type | nano.Ts](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
