// Package runtime executes validated plans over in-memory tables.
package runtime

import (
	"context"
	"fmt"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/compiler/semantic"
	"github.com/dabbsLondon/rdata/pkg/didyoumean"
)

// TableLoader reads an external source into a table.
type TableLoader interface {
	Load(context.Context, *ast.Load) (*rdata.Table, error)
}

// Engine evaluates plans one step at a time, holding every
// intermediate table in memory.  Step results are indexed by position
// rather than by name so a statement that rebinds a name cannot
// invalidate an earlier statement's input.
type Engine struct {
	loader TableLoader
}

func NewEngine(loader TableLoader) *Engine {
	return &Engine{loader: loader}
}

// Run executes plan and returns the table produced by its final step.
// Failures are reported as *rdata.ExecutionError carrying the
// zero-based index of the failing step.
func (e *Engine) Run(ctx context.Context, plan *semantic.Plan) (*rdata.Table, error) {
	results := make([]*rdata.Table, len(plan.Steps))
	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return nil, &rdata.ExecutionError{Step: i, Message: err.Error(), Err: err}
		}
		var in *rdata.Table
		if step.Input >= 0 {
			in = results[step.Input]
		}
		out, err := e.eval(ctx, step, in)
		if err != nil {
			return nil, &rdata.ExecutionError{Step: i, Message: err.Error(), Err: err}
		}
		results[i] = out
	}
	return results[len(results)-1], nil
}

func (e *Engine) eval(ctx context.Context, step semantic.Step, in *rdata.Table) (*rdata.Table, error) {
	switch op := step.Op.(type) {
	case *ast.Load:
		return e.loader.Load(ctx, op)
	case *ast.Filter:
		return evalFilter(in, op)
	case *ast.Select:
		return evalSelect(in, op)
	case *ast.GroupBy:
		return evalGroupBy(in, op)
	case *ast.Sort:
		return evalSort(in, op)
	}
	return nil, fmt.Errorf("unknown operation %T", step.Op)
}

func columnNotFound(name string, in *rdata.Table) error {
	if s := didyoumean.For(name, in.ColumnNames()); s != "" {
		return fmt.Errorf("column %q not found (did you mean %q?)", name, s)
	}
	return fmt.Errorf("column %q not found", name)
}
