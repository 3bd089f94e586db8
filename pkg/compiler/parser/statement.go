// Package parser groups the tokens of each line into typed statement
// nodes and precomputes the jump targets that block statements consult at
// run time.
package parser

import "github.com/zurustar/latin/pkg/compiler/lexer"

// StatementKind classifies a statement node.
type StatementKind int

const (
	StmtDeclare StatementKind = iota
	StmtAssign
	StmtPrint
	StmtDebugLog
	StmtLog
	StmtInput
	StmtIf
	StmtWhile
	StmtElse
	StmtEndBlock
	StmtFunctionDef
	StmtReturn
	StmtThrow
	StmtCatch
)

var statementKindNames = map[StatementKind]string{
	StmtDeclare:     "Declare",
	StmtAssign:      "Assign",
	StmtPrint:       "Print",
	StmtDebugLog:    "DebugLog",
	StmtLog:         "Log",
	StmtInput:       "Input",
	StmtIf:          "If",
	StmtWhile:       "While",
	StmtElse:        "Else",
	StmtEndBlock:    "EndBlock",
	StmtFunctionDef: "FunctionDef",
	StmtReturn:      "Return",
	StmtThrow:       "Throw",
	StmtCatch:       "Catch",
}

// String returns the statement kind name.
func (k StatementKind) String() string {
	if name, ok := statementKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ExprKind classifies the right-hand side of an assignment.
type ExprKind int

const (
	ExprOperand   ExprKind = iota // literal, variable or NIHIL
	ExprOperation                 // arithmetic or string operation
	ExprCall                      // VOCA
)

// Expression is the right-hand side of an assignment.
type Expression struct {
	Kind    ExprKind
	Operand lexer.Token   // ExprOperand
	Op      string        // ExprOperation: the operation keyword
	Args    []lexer.Token // ExprOperation operands / ExprCall actuals
	Callee  lexer.Token   // ExprCall: the function name
}

// Statement is one resolved statement node. The node is immutable after
// the resolution pass; jump target fields index into the program's
// statement slice.
type Statement struct {
	Kind StatementKind
	Line int // 1-indexed source line

	Target     lexer.Token // Assign: left-hand variable; Declare: the declared noun
	Expr       Expression  // Assign
	Operand    lexer.Token // Print/DebugLog/Log/Input/Return: the single operand
	Name       lexer.Token // FunctionDef/Throw/Catch: the named noun
	Payload    lexer.Token // Throw: optional string payload; Type TOKEN_STRING when present
	HasPayload bool

	Params []string // FunctionDef: formal-parameter lemmas in order

	Cond struct { // If/While
		Left  lexer.Token
		Op    string // AEQUAT, MAIVS or MINOR
		Right lexer.Token
	}

	FalseTarget int // If: first statement when the condition is false
	SkipTarget  int // Else: index of the matching FINIS
	ExitTarget  int // While: first statement after the loop
	LoopHeader  int // EndBlock: index of the While it closes, -1 otherwise
	BodyStart   int // FunctionDef/Catch: first statement of the body
	BodyEnd     int // FunctionDef/Catch: index of the matching FINIS
}

// Program is a resolved statement sequence together with the source lines
// it was built from, kept for diagnostics.
type Program struct {
	Statements []*Statement
	Source     []string
}
