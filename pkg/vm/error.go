package vm

import "fmt"

// ErrorType represents the type of a runtime error.
type ErrorType string

const (
	ErrorUndeclaredVariable    ErrorType = "UNDECLARED_VARIABLE"
	ErrorUninitializedVariable ErrorType = "UNINITIALIZED_VARIABLE"
	ErrorCaseMismatch          ErrorType = "CASE_MISMATCH"
	ErrorSyntax                ErrorType = "SYNTAX_ERROR"
	ErrorDivisionByZero        ErrorType = "DIVISION_BY_ZERO"
	ErrorUncaughtException     ErrorType = "UNCAUGHT_EXCEPTION"
)

// RuntimeError is a fatal runtime failure. Only explicitly thrown
// exceptions are recoverable; every RuntimeError halts the program.
type RuntimeError struct {
	Type    ErrorType
	Message string
	Line    int    // 1-indexed source line, 0 when unknown
	Lexeme  string // offending lexeme, when known
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s at line %d", e.Type, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// NewUndeclaredVariableError reports a read of a lemma no scope owns.
func NewUndeclaredVariableError(lemma string) *RuntimeError {
	return &RuntimeError{
		Type:    ErrorUndeclaredVariable,
		Message: fmt.Sprintf("variable %s is not declared", lemma),
		Lexeme:  lemma,
	}
}

// NewUninitializedVariableError reports a read of a declared variable
// before its first assignment.
func NewUninitializedVariableError(lemma string) *RuntimeError {
	return &RuntimeError{
		Type:    ErrorUninitializedVariable,
		Message: fmt.Sprintf("variable %s has no value yet", lemma),
		Lexeme:  lemma,
	}
}

// NewCaseMismatchError reports an operand supplied in the wrong
// grammatical case.
func NewCaseMismatchError(lexeme, required, actual string) *RuntimeError {
	return &RuntimeError{
		Type:    ErrorCaseMismatch,
		Message: fmt.Sprintf("%s must stand in the %s, not the %s", lexeme, required, actual),
		Lexeme:  lexeme,
	}
}

// NewSyntaxError reports a runtime shape violation such as a wrong
// argument count or a non-numeric comparison operand.
func NewSyntaxError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Type: ErrorSyntax, Message: fmt.Sprintf(format, args...)}
}

// NewDivisionByZeroError reports a division-by-zero throw that escaped
// every armed handler.
func NewDivisionByZeroError(payload Value) *RuntimeError {
	return &RuntimeError{Type: ErrorDivisionByZero, Message: payload.Str, Lexeme: "ERROR"}
}

// NewUncaughtExceptionError reports a thrown exception no armed handler
// accepted.
func NewUncaughtExceptionError(name string, payload Value) *RuntimeError {
	msg := fmt.Sprintf("uncaught exception %s", name)
	if payload.Kind == KindStr && payload.Str != "" {
		msg = fmt.Sprintf("uncaught exception %s: %s", name, payload.Str)
	}
	return &RuntimeError{Type: ErrorUncaughtException, Message: msg, Lexeme: name}
}
