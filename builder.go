package rdata

import (
	"fmt"

	"github.com/dabbsLondon/rdata/pkg/nano"
)

// ColumnBuilder accumulates values of a single type and produces a Column.
// Appending a value of the wrong type is an error; appending a null of any
// type records a null slot.
type ColumnBuilder struct {
	name    string
	typ     Type
	anyNull bool
	nulls   []bool
	bools   []bool
	ints    []int64
	floats  []float64
	strs    []string
	times   []nano.Ts
}

func NewColumnBuilder(name string, typ Type) *ColumnBuilder {
	return &ColumnBuilder{name: name, typ: typ}
}

func (b *ColumnBuilder) Name() string { return b.name }
func (b *ColumnBuilder) Type() Type   { return b.typ }

func (b *ColumnBuilder) Len() int {
	return len(b.nulls)
}

func (b *ColumnBuilder) AppendNull() {
	b.anyNull = true
	b.nulls = append(b.nulls, true)
	switch b.typ {
	case TypeBool:
		b.bools = append(b.bools, false)
	case TypeInt64:
		b.ints = append(b.ints, 0)
	case TypeFloat64:
		b.floats = append(b.floats, 0)
	case TypeString:
		b.strs = append(b.strs, "")
	case TypeTime:
		b.times = append(b.times, 0)
	}
}

func (b *ColumnBuilder) Append(v Value) error {
	if v.IsNull() {
		b.AppendNull()
		return nil
	}
	if v.Type() != b.typ {
		return fmt.Errorf("column %q: cannot append %s value to %s column",
			b.name, v.Type(), b.typ)
	}
	b.nulls = append(b.nulls, false)
	switch b.typ {
	case TypeBool:
		b.bools = append(b.bools, v.Bool())
	case TypeInt64:
		b.ints = append(b.ints, v.Int())
	case TypeFloat64:
		b.floats = append(b.floats, v.Float())
	case TypeString:
		b.strs = append(b.strs, v.Str())
	case TypeTime:
		b.times = append(b.times, v.Time())
	}
	return nil
}

// Build returns the accumulated column.  The builder must not be used
// afterward.
func (b *ColumnBuilder) Build() Column {
	nulls := b.nulls
	if !b.anyNull {
		nulls = nil
	}
	switch b.typ {
	case TypeBool:
		if b.bools == nil {
			b.bools = []bool{}
		}
		return &Bools{name: b.name, values: b.bools, nulls: nulls}
	case TypeInt64:
		if b.ints == nil {
			b.ints = []int64{}
		}
		return &Ints{name: b.name, values: b.ints, nulls: nulls}
	case TypeFloat64:
		if b.floats == nil {
			b.floats = []float64{}
		}
		return &Floats{name: b.name, values: b.floats, nulls: nulls}
	case TypeString:
		if b.strs == nil {
			b.strs = []string{}
		}
		return &Strings{name: b.name, values: b.strs, nulls: nulls}
	case TypeTime:
		if b.times == nil {
			b.times = []nano.Ts{}
		}
		return &Times{name: b.name, values: b.times, nulls: nulls}
	}
	return nil
}
