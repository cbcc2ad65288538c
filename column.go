package rdata

import "github.com/dabbsLondon/rdata/pkg/nano"

// Column is one named, typed vector of a Table.  The implementations form
// a closed set, one per Type; the unexported take method keeps it that way.
type Column interface {
	Name() string
	Type() Type
	Len() int
	// Null reports whether the value in the given row is null.
	Null(int) bool
	// Value returns the scalar in the given row.
	Value(int) Value
	// take returns a new column holding the rows selected by indices, in
	// order.  Indices may repeat.
	take(indices []int) Column
}

func takeNulls(nulls []bool, indices []int) []bool {
	if nulls == nil {
		return nil
	}
	out := make([]bool, len(indices))
	for i, idx := range indices {
		out[i] = nulls[idx]
	}
	return out
}

func isNull(nulls []bool, i int) bool {
	return nulls != nil && nulls[i]
}

type Bools struct {
	name   string
	values []bool
	nulls  []bool
}

func NewBools(name string, values []bool, nulls []bool) *Bools {
	return &Bools{name: name, values: values, nulls: nulls}
}

func (b *Bools) Name() string { return b.name }
func (b *Bools) Type() Type { return TypeBool }
func (b *Bools) Len() int { return len(b.values) }
func (b *Bools) Null(i int) bool { return isNull(b.nulls, i) }

func (b *Bools) Value(i int) Value {
	if b.Null(i) {
		return NullValue(TypeBool)
	}
	return NewBool(b.values[i])
}

func (b *Bools) take(indices []int) Column {
	values := make([]bool, len(indices))
	for i, idx := range indices {
		values[i] = b.values[idx]
	}
	return &Bools{name: b.name, values: values, nulls: takeNulls(b.nulls, indices)}
}

type Ints struct {
	name   string
	values []int64
	nulls  []bool
}

func NewInts(name string, values []int64, nulls []bool) *Ints {
	return &Ints{name: name, values: values, nulls: nulls}
}

func (c *Ints) Name() string { return c.name }
func (c *Ints) Type() Type { return TypeInt64 }
func (c *Ints) Len() int { return len(c.values) }
func (c *Ints) Null(i int) bool { return isNull(c.nulls, i) }

func (c *Ints) Value(i int) Value {
	if c.Null(i) {
		return NullValue(TypeInt64)
	}
	return NewInt64(c.values[i])
}

func (c *Ints) take(indices []int) Column {
	values := make([]int64, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &Ints{name: c.name, values: values, nulls: takeNulls(c.nulls, indices)}
}

type Floats struct {
	name   string
	values []float64
	nulls  []bool
}

func NewFloats(name string, values []float64, nulls []bool) *Floats {
	return &Floats{name: name, values: values, nulls: nulls}
}

func (c *Floats) Name() string { return c.name }
func (c *Floats) Type() Type { return TypeFloat64 }
func (c *Floats) Len() int { return len(c.values) }
func (c *Floats) Null(i int) bool { return isNull(c.nulls, i) }

func (c *Floats) Value(i int) Value {
	if c.Null(i) {
		return NullValue(TypeFloat64)
	}
	return NewFloat64(c.values[i])
}

func (c *Floats) take(indices []int) Column {
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &Floats{name: c.name, values: values, nulls: takeNulls(c.nulls, indices)}
}

type Strings struct {
	name   string
	values []string
	nulls  []bool
}

func NewStrings(name string, values []string, nulls []bool) *Strings {
	return &Strings{name: name, values: values, nulls: nulls}
}

func (c *Strings) Name() string { return c.name }
func (c *Strings) Type() Type { return TypeString }
func (c *Strings) Len() int { return len(c.values) }
func (c *Strings) Null(i int) bool { return isNull(c.nulls, i) }

func (c *Strings) Value(i int) Value {
	if c.Null(i) {
		return NullValue(TypeString)
	}
	return NewString(c.values[i])
}

func (c *Strings) take(indices []int) Column {
	values := make([]string, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &Strings{name: c.name, values: values, nulls: takeNulls(c.nulls, indices)}
}

type Times struct {
	name   string
	values []nano.Ts
	nulls  []bool
}

func NewTimes(name string, values []nano.Ts, nulls []bool) *Times {
	return &Times{name: name, values: values, nulls: nulls}
}

func (c *Times) Name() string { return c.name }
func (c *Times) Type() Type { return TypeTime }
func (c *Times) Len() int { return len(c.values) }
func (c *Times) Null(i int) bool { return isNull(c.nulls, i) }

func (c *Times) Value(i int) Value {
	if c.Null(i) {
		return NullValue(TypeTime)
	}
	return NewTime(c.values[i])
}

func (c *Times) take(indices []int) Column {
	values := make([]nano.Ts, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &Times{name: c.name, values: values, nulls: takeNulls(c.nulls, indices)}
}

// Rename returns a column sharing col's data under a new name.
func Rename(col Column, name string) Column {
	switch c := col.(type) {
	case *Bools:
		return &Bools{name: name, values: c.values, nulls: c.nulls}
	case *Ints:
		return &Ints{name: name, values: c.values, nulls: c.nulls}
	case *Floats:
		return &Floats{name: name, values: c.values, nulls: c.nulls}
	case *Strings:
		return &Strings{name: name, values: c.values, nulls: c.nulls}
	case *Times:
		return &Times{name: name, values: c.values, nulls: c.nulls}
	}
	return col
}
