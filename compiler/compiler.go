// Package compiler turns script text into a validated execution plan.
package compiler

import (
	"github.com/dabbsLondon/rdata/compiler/parser"
	"github.com/dabbsLondon/rdata/compiler/semantic"
)

// Compile parses and validates src.  Errors are *rdata.ParseError or
// *rdata.ValidationError.
func Compile(src string) (*semantic.Plan, error) {
	stmts, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return semantic.Analyze(stmts)
}
