// Package diag holds the source diagnostics shared by every compiler pass.
package diag

import "fmt"

// Error is a diagnostic attached to a source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Errorf builds an *Error for line.
func Errorf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}
