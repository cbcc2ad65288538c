// Package semantic validates parsed statements and resolves each
// statement's input variable to the step that produced it.
package semantic

import (
	"fmt"

	"github.com/dabbsLondon/rdata"
	"github.com/dabbsLondon/rdata/compiler/ast"
	"github.com/dabbsLondon/rdata/pkg/didyoumean"
	"github.com/dabbsLondon/rdata/runtime/agg"
	"golang.org/x/exp/slices"
)

// Step is one executable statement.  Input is the index of the step
// whose result feeds this one, or -1 for loads.
type Step struct {
	*ast.Assign
	Input int
}

// Plan is a validated script.  Steps run in order, each reading the
// output of an earlier step.
type Plan struct {
	Steps []Step
}

// Analyze checks stmts and resolves variable references.  Names may be
// reassigned; a reference always means the most recent assignment on
// an earlier line, so a statement can read and rebind the same name.
func Analyze(stmts []*ast.Assign) (*Plan, error) {
	if len(stmts) == 0 {
		return nil, errf(1, "empty script")
	}
	defs := make(map[string]int)
	steps := make([]Step, 0, len(stmts))
	for i, stmt := range stmts {
		input := -1
		if _, ok := stmt.Op.(*ast.Load); !ok {
			j, ok := defs[stmt.Source]
			if !ok {
				return nil, undefinedError(stmt, defs)
			}
			input = j
		}
		if err := checkOp(stmt); err != nil {
			return nil, err
		}
		steps = append(steps, Step{Assign: stmt, Input: input})
		defs[stmt.Name] = i
	}
	return &Plan{Steps: steps}, nil
}

func undefinedError(stmt *ast.Assign, defs map[string]int) error {
	msg := fmt.Sprintf("undefined variable %q", stmt.Source)
	if len(defs) > 0 {
		names := make([]string, 0, len(defs))
		for n := range defs {
			names = append(names, n)
		}
		slices.Sort(names)
		if s := didyoumean.For(stmt.Source, names); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
	}
	return &rdata.ValidationError{Line: stmt.Line, Message: msg}
}

func checkOp(stmt *ast.Assign) error {
	switch op := stmt.Op.(type) {
	case *ast.Load:
		if op.Path == "" {
			return errf(stmt.Line, "empty source path")
		}
	case *ast.Filter:
		if op.Cond.Value.Type() == rdata.TypeBool {
			switch op.Cond.Op {
			case "<", ">", "<=", ">=":
				return errf(stmt.Line, "cannot use %s to compare a boolean", op.Cond.Op)
			}
		}
	case *ast.Select:
		if n := firstDup(op.Columns); n != "" {
			return errf(stmt.Line, "duplicate column %q in select", n)
		}
	case *ast.GroupBy:
		return checkGroupBy(stmt.Line, op)
	case *ast.Sort:
		names := make([]string, len(op.Keys))
		for i, k := range op.Keys {
			names[i] = k.Column
		}
		if n := firstDup(names); n != "" {
			return errf(stmt.Line, "duplicate sort key %q", n)
		}
	}
	return nil
}

func checkGroupBy(line int, op *ast.GroupBy) error {
	if len(op.Aggs) == 0 {
		return errf(line, "groupby requires at least one aggregation")
	}
	if n := firstDup(op.Keys); n != "" {
		return errf(line, "duplicate groupby key %q", n)
	}
	outputs := append([]string{}, op.Keys...)
	for _, a := range op.Aggs {
		if !agg.Exists(a.Func) {
			if s := didyoumean.For(a.Func, agg.Names()); s != "" {
				return errf(line, "unknown aggregation %q (did you mean %q?)", a.Func, s)
			}
			return errf(line, "unknown aggregation %q", a.Func)
		}
		outputs = append(outputs, a.OutputName())
	}
	if n := firstDup(outputs); n != "" {
		return errf(line, "duplicate output column %q", n)
	}
	return nil
}

func firstDup(names []string) string {
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}

func errf(line int, format string, args ...any) error {
	return &rdata.ValidationError{Line: line, Message: fmt.Sprintf(format, args...)}
}
