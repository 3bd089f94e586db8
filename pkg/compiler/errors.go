// Package compiler turns LATIN source text into a resolved program. This
// file defines the load-time error type shared by the tokenizer and the
// statement builder.
package compiler

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a load-time failure.
type ErrorKind string

const (
	KindUnknownWord     ErrorKind = "UNKNOWN_WORD"
	KindAmbiguousParse  ErrorKind = "AMBIGUOUS_PARSE"
	KindSyntaxError     ErrorKind = "SYNTAX_ERROR"
	KindUnbalancedBlock ErrorKind = "UNBALANCED_BLOCK"
)

// CompileError is a load-time error on one line. Loading stops at the
// first failing line; no partial execution of a malformed program is ever
// attempted. The kind and position survive any locale rendering.
type CompileError struct {
	Kind       ErrorKind
	Message    string
	Line       int      // 1-indexed
	Column     int      // 1-indexed, 0 when the failure has no column
	Lexeme     string   // offending text, when known
	Candidates []string // AmbiguousParse: the lemmas that tied
	Context    string   // source excerpt around the failure
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Column > 0 {
		loc = fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	}
	if e.Context != "" {
		return fmt.Sprintf("[%s] %s at %s\n%s", e.Kind, e.Message, loc, e.Context)
	}
	return fmt.Sprintf("[%s] %s at %s", e.Kind, e.Message, loc)
}

// errorContext renders the source lines around a failure with a pointer
// marking the failing column.
func errorContext(lines []string, line, column int) string {
	if line <= 0 || line > len(lines) {
		return ""
	}
	start := line - 2
	if start < 1 {
		start = 1
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}

	width := len(fmt.Sprintf("%d", end))
	var b strings.Builder
	for n := start; n <= end; n++ {
		if n == line {
			fmt.Fprintf(&b, "> %*d | %s\n", width, n, lines[n-1])
			if column > 0 {
				fmt.Fprintf(&b, "  %*s | %s^\n", width, "", strings.Repeat(" ", column-1))
			}
		} else {
			fmt.Fprintf(&b, "  %*d | %s\n", width, n, lines[n-1])
		}
	}
	return b.String()
}
