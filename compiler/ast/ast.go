// Package ast declares the operation descriptors produced by the script
// parser.  Each verb has its own node type carrying exactly the typed
// fields that verb requires, so later stages dispatch with a total type
// switch instead of inspecting loosely typed arguments.
package ast

import "github.com/dabbsLondon/rdata"

// Assign is one parsed script statement: <name> = <source>.<verb>(<args>).
// Source is the name of a previously assigned table, or empty when Op is a
// *Load (the loader call takes the source position).  Line is the 1-based
// script line the statement came from.
type Assign struct {
	Line   int
	Name   string
	Source string
	Op     Op
}

// Op is one of the verb nodes below.
type Op interface {
	opNode()
}

// Load reads an external data source.  Loader is the source format
// ("parquet" or "csv"); Path is the script-supplied location, resolved
// against the configured data root at execution time.
type Load struct {
	Loader string
	Path   string
}

// Filter keeps the rows satisfying Cond.
type Filter struct {
	Cond Comparison
}

// Select projects the table to Columns, in order.
type Select struct {
	Columns []string
}

// GroupBy partitions rows by the Keys columns and computes Aggs within
// each partition.  Keys may be empty: the whole table forms one group.
type GroupBy struct {
	Keys []string
	Aggs []AggExpr
}

// Sort orders rows by Keys, earlier keys first.
type Sort struct {
	Keys []SortKey
}

func (*Load) opNode()    {}
func (*Filter) opNode()  {}
func (*Select) opNode()  {}
func (*GroupBy) opNode() {}
func (*Sort) opNode()    {}

// Comparison is a column-versus-literal predicate.  Op is one of
// ">", "<", ">=", "<=", "==", "!=".  Value's type is fixed at parse time;
// coercion against the column's actual type happens at execution.
type Comparison struct {
	Column string
	Op     string
	Value  rdata.Value
}

// AggExpr applies the named aggregation function to a column.
type AggExpr struct {
	Column string
	Func   string
}

// OutputName returns the column name the aggregation produces.
func (a AggExpr) OutputName() string {
	return a.Column + "_" + a.Func
}

// SortKey names a sort column and its direction.
type SortKey struct {
	Column     string
	Descending bool
}
