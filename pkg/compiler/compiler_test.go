package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/zurustar/latin/pkg/compiler/lexer"
	"github.com/zurustar/latin/pkg/compiler/parser"
	"github.com/zurustar/latin/pkg/declension"
)

func TestCompileProgram(t *testing.T) {
	source := strings.Join([]string{
		"SITNUMERUS",
		"NUMERUSESTXLII",
		"SCRIBENUMERUM",
	}, "\n")

	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(prog.Statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Statements))
	}
	if prog.Statements[2].Kind != parser.StmtPrint {
		t.Errorf("statement 2 kind = %s, want Print", prog.Statements[2].Kind)
	}
}

func TestCompileSkipsBlankAndCommentLines(t *testing.T) {
	source := strings.Join([]string{
		";salutatio",
		"",
		"SITNUMERUS",
		"   ",
		"NUMERUSESTI",
	}, "\n")

	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	// Line numbers still point into the original source.
	if prog.Statements[1].Line != 5 {
		t.Errorf("statement 1 line = %d, want 5", prog.Statements[1].Line)
	}
}

func TestCompileUnknownWordPosition(t *testing.T) {
	source := strings.Join([]string{
		"SITNUMERUS",
		"SCRIBEFORTUNAM",
	}, "\n")

	_, err := Compile(source)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want *CompileError", err)
	}
	if ce.Kind != KindUnknownWord {
		t.Errorf("kind = %s, want %s", ce.Kind, KindUnknownWord)
	}
	if ce.Line != 2 || ce.Column != 7 {
		t.Errorf("position = line %d column %d, want line 2 column 7", ce.Line, ce.Column)
	}
	if !strings.Contains(ce.Context, "^") {
		t.Errorf("context lacks column pointer:\n%s", ce.Context)
	}
	if !strings.Contains(ce.Error(), "[UNKNOWN_WORD]") {
		t.Errorf("rendered error lacks kind tag: %s", ce.Error())
	}
}

func TestCompileUnbalancedBlock(t *testing.T) {
	source := strings.Join([]string{
		"SITNUMERUS",
		"NUMERUSESTI",
		"DUMNUMERUSMINORX",
		"SCRIBENUMERUM",
	}, "\n")

	_, err := Compile(source)
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != KindUnbalancedBlock {
		t.Fatalf("got %v, want unbalanced-block compile error", err)
	}
	if ce.Line != 3 {
		t.Errorf("line = %d, want 3 (the unclosed DUM)", ce.Line)
	}
}

func TestCompileAmbiguousParse(t *testing.T) {
	source := strings.Join([]string{
		"SITTOTUS",
		"SITTOT",
		"SCRIBETOTO",
	}, "\n")

	_, err := Compile(source)
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != KindAmbiguousParse {
		t.Fatalf("got %v, want ambiguous-parse compile error", err)
	}
	if len(ce.Candidates) != 2 {
		t.Errorf("candidates = %v, want two lemmas", ce.Candidates)
	}
}

func TestCompileLineAccumulatesDeclarations(t *testing.T) {
	lex := lexer.New(declension.NewTable())

	if _, err := CompileLine(lex, "SCRIBENUMERUM"); err == nil {
		t.Fatal("undeclared word accepted")
	}

	st, err := CompileLine(lex, "SITNUMERUS")
	if err != nil || st == nil || st.Kind != parser.StmtDeclare {
		t.Fatalf("declaration failed: %v %v", st, err)
	}

	st, err = CompileLine(lex, "SCRIBENUMERUM")
	if err != nil || st == nil || st.Kind != parser.StmtPrint {
		t.Fatalf("declared word rejected after declaration: %v %v", st, err)
	}

	st, err = CompileLine(lex, ";commentarium")
	if err != nil || st != nil {
		t.Fatalf("comment-only line = %v %v, want nil statement", st, err)
	}
}
