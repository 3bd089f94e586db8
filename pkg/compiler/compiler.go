package compiler

import (
	"errors"
	"strings"

	"github.com/zurustar/latin/pkg/compiler/lexer"
	"github.com/zurustar/latin/pkg/compiler/parser"
	"github.com/zurustar/latin/pkg/declension"
)

// Compile loads LATIN source into a resolved program: each line is
// tokenized and classified, declarations feed the tokenizer's declared
// set for the lines that follow, and a final pass resolves every block
// jump target. Any failure is fatal for the whole load.
func Compile(source string) (*parser.Program, error) {
	lines := strings.Split(source, "\n")
	lex := lexer.New(declension.NewTable())
	prog := &parser.Program{Source: lines}

	for idx, raw := range lines {
		lineNo := idx + 1
		tokens, err := lex.TokenizeLine(raw)
		if err != nil {
			return nil, wrapLexerError(err, lines, lineNo)
		}
		if len(tokens) == 0 {
			continue
		}
		st, err := parser.Build(tokens, lineNo)
		if err != nil {
			return nil, wrapParserError(err, lines)
		}
		if st.Kind == parser.StmtDeclare {
			lex.Declare(st.Target.Lemma)
		}
		prog.Statements = append(prog.Statements, st)
	}

	if err := parser.Resolve(prog.Statements); err != nil {
		return nil, wrapParserError(err, lines)
	}
	return prog, nil
}

// CompileLine tokenizes and classifies one line against an existing
// tokenizer, for interactive sessions where declarations accumulate
// across inputs. A blank or comment-only line yields a nil statement.
// Jump targets stay unresolved; block statements are the caller's
// problem.
func CompileLine(lex *lexer.Lexer, line string) (*parser.Statement, error) {
	lines := []string{line}
	tokens, err := lex.TokenizeLine(line)
	if err != nil {
		return nil, wrapLexerError(err, lines, 1)
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	st, err := parser.Build(tokens, 1)
	if err != nil {
		return nil, wrapParserError(err, lines)
	}
	if st.Kind == parser.StmtDeclare {
		lex.Declare(st.Target.Lemma)
	}
	return st, nil
}

func wrapLexerError(err error, lines []string, line int) error {
	var le *lexer.Error
	if !errors.As(err, &le) {
		return err
	}
	ce := &CompileError{
		Line:    line,
		Column:  le.Column,
		Lexeme:  le.Text,
		Context: errorContext(lines, line, le.Column),
	}
	switch le.Kind {
	case lexer.ErrUnknownWord:
		ce.Kind = KindUnknownWord
		ce.Message = "word is not understood"
	case lexer.ErrAmbiguousParse:
		ce.Kind = KindAmbiguousParse
		ce.Candidates = le.Candidates
		ce.Message = "form matches more than one declared noun: " + strings.Join(le.Candidates, ", ")
	default:
		ce.Kind = KindSyntaxError
		ce.Message = "unterminated string literal"
	}
	return ce
}

func wrapParserError(err error, lines []string) error {
	var pe *parser.Error
	if !errors.As(err, &pe) {
		return err
	}
	kind := KindSyntaxError
	if pe.Kind == parser.ErrUnbalancedBlock {
		kind = KindUnbalancedBlock
	}
	return &CompileError{
		Kind:    kind,
		Message: pe.Message,
		Line:    pe.Line,
		Context: errorContext(lines, pe.Line, 0),
	}
}
