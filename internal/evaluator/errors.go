package evaluator

import (
	"fmt"

	toyerrors "github.com/cwbudde/go-toy/internal/errors"
)

// RuntimeError is a language-level runtime failure, per spec.md §4.3's
// failure model. It carries a line number so the driver can render it as a
// structured diagnostic (spec.md §7).
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Diagnostic converts a RuntimeError into the shared errors.Diagnostic type.
func (e *RuntimeError) Diagnostic() *toyerrors.Diagnostic {
	return toyerrors.NewDiagnostic(toyerrors.Runtime, e.Line, "%s", e.Message)
}
