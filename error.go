package rdata

import "fmt"

// The pipeline stages each fail with their own error type so callers can
// tell a malformed script from a well-formed script over missing data from
// a server-side output failure.  All four are terminal for a request: no
// partial result accompanies any of them.

// ParseError reports a syntactically invalid script line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

// ValidationError reports a well-formed line that cannot be planned, such
// as a reference to an undefined name or a bad argument shape.
type ValidationError struct {
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error at line %d: %s", e.Line, e.Message)
}

// ExecutionError reports a failure while running a validated plan.  Step
// is the zero-based index of the failing plan step.
type ExecutionError struct {
	Step    int
	Message string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error at step %d: %s", e.Step, e.Message)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// MaterializationError reports a failure serializing, compressing, or
// persisting the final table.
type MaterializationError struct {
	Err error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("materialization error: %s", e.Err)
}

func (e *MaterializationError) Unwrap() error { return e.Err }
