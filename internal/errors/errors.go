// Package errors formats Toy diagnostics with source context, line number,
// and a caret under the start of the offending line (no column is
// tracked), per spec.md §7.
package errors

import (
	"fmt"
	"strings"
)

// Phase identifies which pipeline stage raised a Diagnostic.
type Phase string

const (
	Lexical   Phase = "lexical"
	Syntactic Phase = "syntactic"
	Semantic  Phase = "semantic"
	Runtime   Phase = "runtime"
)

// Diagnostic is a single structured error, tagged by phase, with a line
// number when available (spec.md §6/§7).
type Diagnostic struct {
	Phase   Phase
	Line    int
	Message string
}

// NewDiagnostic constructs a Diagnostic for the given phase and line.
func NewDiagnostic(phase Phase, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Phase: phase, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format("", false)
}

// Format renders the diagnostic as "<Phase> error at line N: message",
// optionally pointing a caret at the source line when source is non-empty.
func (d *Diagnostic) Format(source string, color bool) string {
	var sb strings.Builder

	phase := strings.ToUpper(string(d.Phase)[:1]) + string(d.Phase)[1:]
	if d.Line > 0 {
		fmt.Fprintf(&sb, "%s error at line %d: %s\n", phase, d.Line, d.Message)
	} else {
		fmt.Fprintf(&sb, "%s error: %s\n", phase, d.Message)
	}

	if source != "" && d.Line > 0 {
		lines := strings.Split(source, "\n")
		if d.Line-1 < len(lines) {
			line := lines[d.Line-1]
			lineNumStr := fmt.Sprintf("%4d | ", d.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// ExitCode maps the phase to the CLI exit code from spec.md §6.
func (d *Diagnostic) ExitCode() int {
	switch d.Phase {
	case Lexical, Syntactic, Semantic:
		return 65
	case Runtime:
		return 70
	default:
		return 1
	}
}

// FormatAll renders a batch of diagnostics, each formatted as by Format and
// separated from the next by a blank line, so the driver can report multiple errors per run (spec.md §2).
func FormatAll(diags []*Diagnostic, source string, color bool) string {
	var parts []string
	for _, d := range diags {
		parts = append(parts, d.Format(source, color))
	}
	return strings.Join(parts, "\n\n")
}
