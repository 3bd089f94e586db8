package parser

import (
	"fmt"

	"github.com/zurustar/latin/pkg/compiler/lexer"
)

// ErrorKind classifies statement-builder failures.
type ErrorKind string

const (
	ErrSyntax          ErrorKind = "SYNTAX_ERROR"
	ErrUnbalancedBlock ErrorKind = "UNBALANCED_BLOCK"
)

// Error is a statement-builder or jump-resolution failure.
type Error struct {
	Kind    ErrorKind
	Line    int // 1-indexed source line
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] line %d: %s", e.Kind, e.Line, e.Message)
}

func syntaxErr(line int, format string, args ...any) *Error {
	return &Error{Kind: ErrSyntax, Line: line, Message: fmt.Sprintf(format, args...)}
}

// operation keywords allowed on the right-hand side of EST.
var operationKeywords = map[string]bool{
	lexer.KwAdde:       true,
	lexer.KwDeme:       true,
	lexer.KwMultiplica: true,
	lexer.KwDuce:       true,
	lexer.KwIunge:      true,
	lexer.KwIncipit:    true,
	lexer.KwFinitur:    true,
	lexer.KwContinet:   true,
	lexer.KwIndicede:   true,
}

var comparisonKeywords = map[string]bool{
	lexer.KwAequat: true,
	lexer.KwMaius:  true,
	lexer.KwMinor:  true,
}

// isValue reports whether a token can stand where a value is expected.
func isValue(t lexer.Token) bool {
	switch t.Type {
	case lexer.TOKEN_VARIABLE, lexer.TOKEN_NUMERAL, lexer.TOKEN_NIHIL, lexer.TOKEN_STRING:
		return true
	}
	return false
}

// Build classifies the token stream of one line into exactly one
// statement node. Jump targets are filled in later by Resolve.
func Build(tokens []lexer.Token, line int) (*Statement, error) {
	if len(tokens) == 0 {
		return nil, syntaxErr(line, "empty statement")
	}
	st := &Statement{Line: line, LoopHeader: -1, FalseTarget: -1, SkipTarget: -1, ExitTarget: -1, BodyStart: -1, BodyEnd: -1}

	first := tokens[0]
	if first.Type == lexer.TOKEN_KEYWORD {
		switch first.Literal {
		case lexer.KwSit:
			if len(tokens) != 2 || tokens[1].Type != lexer.TOKEN_VARIABLE {
				return nil, syntaxErr(line, "SIT requires exactly one noun")
			}
			st.Kind = StmtDeclare
			st.Target = tokens[1]
			return st, nil

		case lexer.KwScribe, lexer.KwAudi, lexer.KwNota:
			if len(tokens) != 2 || !isValue(tokens[1]) {
				return nil, syntaxErr(line, "%s requires exactly one operand", first.Literal)
			}
			switch first.Literal {
			case lexer.KwScribe:
				st.Kind = StmtPrint
			case lexer.KwAudi:
				st.Kind = StmtDebugLog
			default:
				st.Kind = StmtLog
			}
			st.Operand = tokens[1]
			return st, nil

		case lexer.KwLego, lexer.KwLege:
			if len(tokens) != 2 || tokens[1].Type != lexer.TOKEN_VARIABLE {
				return nil, syntaxErr(line, "%s requires a variable", first.Literal)
			}
			st.Kind = StmtInput
			st.Operand = tokens[1]
			return st, nil

		case lexer.KwSi, lexer.KwDum:
			if len(tokens) != 4 {
				return nil, syntaxErr(line, "%s requires a condition of three parts", first.Literal)
			}
			if tokens[1].Type != lexer.TOKEN_VARIABLE {
				return nil, syntaxErr(line, "%s requires a variable on the left", first.Literal)
			}
			if tokens[2].Type != lexer.TOKEN_KEYWORD || !comparisonKeywords[tokens[2].Literal] {
				return nil, syntaxErr(line, "%s requires AEQUAT, MAIVS or MINOR", first.Literal)
			}
			if !isValue(tokens[3]) {
				return nil, syntaxErr(line, "%s requires a value on the right", first.Literal)
			}
			if first.Literal == lexer.KwSi {
				st.Kind = StmtIf
			} else {
				st.Kind = StmtWhile
			}
			st.Cond.Left = tokens[1]
			st.Cond.Op = tokens[2].Literal
			st.Cond.Right = tokens[3]
			return st, nil

		case lexer.KwAliter:
			if len(tokens) != 1 {
				return nil, syntaxErr(line, "ALITER stands alone")
			}
			st.Kind = StmtElse
			return st, nil

		case lexer.KwFinis:
			if len(tokens) != 1 {
				return nil, syntaxErr(line, "FINIS stands alone")
			}
			st.Kind = StmtEndBlock
			return st, nil

		case lexer.KwFac:
			if len(tokens) < 2 {
				return nil, syntaxErr(line, "FAC requires a function name")
			}
			for _, t := range tokens[1:] {
				if t.Type != lexer.TOKEN_VARIABLE {
					return nil, syntaxErr(line, "FAC name and parameters must be nouns")
				}
			}
			st.Kind = StmtFunctionDef
			st.Name = tokens[1]
			for _, t := range tokens[2:] {
				st.Params = append(st.Params, t.Lemma)
			}
			return st, nil

		case lexer.KwReddo:
			if len(tokens) != 2 || !isValue(tokens[1]) {
				return nil, syntaxErr(line, "REDDO requires a value")
			}
			st.Kind = StmtReturn
			st.Operand = tokens[1]
			return st, nil

		case lexer.KwIace:
			if len(tokens) < 2 || tokens[1].Type != lexer.TOKEN_VARIABLE {
				return nil, syntaxErr(line, "IACE requires an exception name")
			}
			if len(tokens) == 3 {
				if tokens[2].Type != lexer.TOKEN_STRING {
					return nil, syntaxErr(line, "IACE payload must be a string")
				}
				st.Payload = tokens[2]
				st.HasPayload = true
			} else if len(tokens) != 2 {
				return nil, syntaxErr(line, "IACE takes a name and at most one payload")
			}
			st.Kind = StmtThrow
			st.Name = tokens[1]
			return st, nil

		case lexer.KwCape:
			if len(tokens) != 2 || tokens[1].Type != lexer.TOKEN_VARIABLE {
				return nil, syntaxErr(line, "CAPE requires an exception name")
			}
			st.Kind = StmtCatch
			st.Name = tokens[1]
			return st, nil
		}
		return nil, syntaxErr(line, "%s cannot begin a statement", first.Literal)
	}

	// Assignment: VARIABLE EST <expression>
	if first.Type == lexer.TOKEN_VARIABLE && len(tokens) >= 3 && tokens[1].IsKeyword(lexer.KwEst) {
		st.Kind = StmtAssign
		st.Target = first
		expr, err := buildExpression(tokens[2:], line)
		if err != nil {
			return nil, err
		}
		st.Expr = expr
		return st, nil
	}

	return nil, syntaxErr(line, "unrecognized statement shape")
}

// buildExpression classifies the tokens after EST.
func buildExpression(tokens []lexer.Token, line int) (Expression, error) {
	if len(tokens) == 1 && isValue(tokens[0]) {
		return Expression{Kind: ExprOperand, Operand: tokens[0]}, nil
	}
	if tokens[0].Type != lexer.TOKEN_KEYWORD {
		return Expression{}, syntaxErr(line, "invalid assignment expression")
	}

	if tokens[0].Literal == lexer.KwVoca {
		if len(tokens) < 2 || tokens[1].Type != lexer.TOKEN_VARIABLE {
			return Expression{}, syntaxErr(line, "VOCA requires a function name")
		}
		expr := Expression{Kind: ExprCall, Callee: tokens[1]}
		for _, t := range tokens[2:] {
			if !isValue(t) {
				return Expression{}, syntaxErr(line, "VOCA arguments must be values")
			}
			expr.Args = append(expr.Args, t)
		}
		return expr, nil
	}

	if operationKeywords[tokens[0].Literal] {
		if len(tokens) != 3 || !isValue(tokens[1]) || !isValue(tokens[2]) {
			return Expression{}, syntaxErr(line, "%s requires two operands", tokens[0].Literal)
		}
		return Expression{Kind: ExprOperation, Op: tokens[0].Literal, Args: []lexer.Token{tokens[1], tokens[2]}}, nil
	}

	return Expression{}, syntaxErr(line, "invalid assignment expression")
}

// openBlock is one entry of the resolver's open-block stack.
type openBlock struct {
	index   int
	elseIdx int // If blocks: index of the ALITER seen so far, -1 otherwise
}

// Resolve walks the statement sequence once, matching block headers with
// their FINIS and filling in every jump target. It fails with
// UnbalancedBlock when a FINIS has no open header or a header is never
// closed.
func Resolve(statements []*Statement) error {
	var stack []openBlock
	for i, st := range statements {
		switch st.Kind {
		case StmtIf, StmtWhile, StmtFunctionDef, StmtCatch:
			stack = append(stack, openBlock{index: i, elseIdx: -1})

		case StmtElse:
			if len(stack) == 0 {
				return &Error{Kind: ErrUnbalancedBlock, Line: st.Line, Message: "ALITER outside any block"}
			}
			top := &stack[len(stack)-1]
			header := statements[top.index]
			if header.Kind != StmtIf || top.elseIdx >= 0 {
				return &Error{Kind: ErrUnbalancedBlock, Line: st.Line, Message: "ALITER does not match an open SI"}
			}
			top.elseIdx = i

		case StmtEndBlock:
			if len(stack) == 0 {
				return &Error{Kind: ErrUnbalancedBlock, Line: st.Line, Message: "FINIS without an open block"}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			header := statements[top.index]
			switch header.Kind {
			case StmtIf:
				if top.elseIdx >= 0 {
					header.FalseTarget = top.elseIdx + 1
					statements[top.elseIdx].SkipTarget = i
				} else {
					header.FalseTarget = i
				}
			case StmtWhile:
				header.ExitTarget = i + 1
				st.LoopHeader = top.index
			case StmtFunctionDef, StmtCatch:
				header.BodyStart = top.index + 1
				header.BodyEnd = i
			}
		}
	}
	if len(stack) > 0 {
		open := statements[stack[len(stack)-1].index]
		return &Error{Kind: ErrUnbalancedBlock, Line: open.Line, Message: fmt.Sprintf("%s block is never closed", open.Kind)}
	}
	return nil
}
