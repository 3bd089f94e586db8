package locale

import (
	"strings"
	"testing"

	"github.com/zurustar/latin/pkg/compiler"
	"github.com/zurustar/latin/pkg/vm"
)

func TestRenderRuntimeLatinDefault(t *testing.T) {
	pr := New(false)
	err := vm.NewUninitializedVariableError("NUMERUS")
	err.Line = 3

	got := pr.RenderRuntime(err)
	if !strings.Contains(got, "[UNINITIALIZED_VARIABLE]") {
		t.Errorf("kind tag missing: %q", got)
	}
	if !strings.Contains(got, "in linea 3") {
		t.Errorf("Latin position missing: %q", got)
	}
	if !strings.Contains(got, "NUMERUS") {
		t.Errorf("lexeme missing: %q", got)
	}
}

func TestRenderRuntimeEnglish(t *testing.T) {
	pr := New(true)
	err := vm.NewUndeclaredVariableError("ROSA")
	err.Line = 7

	got := pr.RenderRuntime(err)
	if !strings.Contains(got, "at line 7") {
		t.Errorf("English position missing: %q", got)
	}
	if !strings.Contains(got, "variable ROSA is not declared") {
		t.Errorf("English message missing: %q", got)
	}
}

func TestRenderRuntimeDivisionByZero(t *testing.T) {
	err := vm.NewDivisionByZeroError(vm.NewStr("Divisio per nihil"))
	err.Line = 4

	latin := New(false).RenderRuntime(err)
	if !strings.Contains(latin, "[DIVISION_BY_ZERO]") || !strings.Contains(latin, "divisio per nihil") {
		t.Errorf("Latin rendering wrong: %q", latin)
	}
	english := New(true).RenderRuntime(err)
	if !strings.Contains(english, "division by zero") {
		t.Errorf("English rendering wrong: %q", english)
	}
}

func TestRenderCompileKeepsKindAndContext(t *testing.T) {
	ce := &compiler.CompileError{
		Kind:    compiler.KindUnknownWord,
		Line:    2,
		Column:  7,
		Lexeme:  "FORTVNAM",
		Context: "> 2 | SCRIBEFORTVNAM\n",
	}

	for _, english := range []bool{false, true} {
		got := New(english).RenderCompile(ce)
		if !strings.Contains(got, "[UNKNOWN_WORD]") {
			t.Errorf("english=%v: kind tag missing: %q", english, got)
		}
		if !strings.Contains(got, "SCRIBEFORTVNAM") {
			t.Errorf("english=%v: context missing: %q", english, got)
		}
	}

	latin := New(false).RenderCompile(ce)
	if !strings.Contains(latin, "in linea 2, columna 7") {
		t.Errorf("Latin position missing: %q", latin)
	}
}

func TestRenderCompileAmbiguity(t *testing.T) {
	ce := &compiler.CompileError{
		Kind:       compiler.KindAmbiguousParse,
		Line:       1,
		Column:     7,
		Lexeme:     "TOTO",
		Candidates: []string{"TOT", "TOTUS"},
	}
	got := New(true).RenderCompile(ce)
	if !strings.Contains(got, "TOT, TOTUS") {
		t.Errorf("candidates missing: %q", got)
	}
}
