// Package agg provides the aggregation functions available to groupby
// and whole-frame aggregates.
package agg

import (
	"fmt"

	"github.com/dabbsLondon/rdata"
)

// Function consumes one value per input row and produces a final
// aggregate value.  Null inputs are ignored.
type Function interface {
	Consume(rdata.Value)
	Result() rdata.Value
}

// funcNames lists every aggregation, in the order used for error
// suggestions.
var funcNames = []string{"mean", "sum", "min", "max", "count", "n_unique"}

// Names returns the names of the available aggregation functions.
func Names() []string {
	names := make([]string, len(funcNames))
	copy(names, funcNames)
	return names
}

// Exists reports whether name is a known aggregation function.
func Exists(name string) bool {
	for _, n := range funcNames {
		if n == name {
			return true
		}
	}
	return false
}

// ResultType returns the type of the value the named aggregation
// produces.  Numeric reductions always produce float64 so mixed int
// and float groups have a uniform output schema.
func ResultType(name string) rdata.Type {
	switch name {
	case "count", "n_unique":
		return rdata.TypeInt64
	}
	return rdata.TypeFloat64
}

// Check reports whether the named function can aggregate a column of
// the given type.  Callers use it to reject a bad plan before any rows
// are consumed, since an empty input would otherwise never build an
// aggregator.
func Check(name string, typ rdata.Type) error {
	_, err := New(name, typ)
	return err
}

// New returns a fresh aggregator for the named function over a column
// of the given type.  Numeric reductions reject non-numeric columns
// here so no rows are consumed before the error surfaces.
func New(name string, typ rdata.Type) (Function, error) {
	switch name {
	case "mean":
		if !typ.IsNumeric() {
			return nil, numericError(name, typ)
		}
		return &avg{}, nil
	case "sum":
		if !typ.IsNumeric() {
			return nil, numericError(name, typ)
		}
		return &fold{fn: Add}, nil
	case "min":
		if !typ.IsNumeric() {
			return nil, numericError(name, typ)
		}
		return &fold{fn: Min}, nil
	case "max":
		if !typ.IsNumeric() {
			return nil, numericError(name, typ)
		}
		return &fold{fn: Max}, nil
	case "count":
		return &count{}, nil
	case "n_unique":
		return newCountDistinct(), nil
	}
	return nil, fmt.Errorf("unknown aggregation %q", name)
}

func numericError(name string, typ rdata.Type) error {
	return fmt.Errorf("%s requires a numeric column, not %s", name, typ)
}
