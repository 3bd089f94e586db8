// Package locale renders diagnostics in Latin (the default) or English.
// Whatever the language, the error kind tag and the source position are
// always present, so scripted consumers can match on them.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/zurustar/latin/pkg/compiler"
	"github.com/zurustar/latin/pkg/vm"
)

var latinTag = language.MustParse("la")

var msgCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(latinTag))
	set := func(key, la, en string) {
		if err := b.SetString(latinTag, key, la); err != nil {
			panic(err)
		}
		if err := b.SetString(language.English, key, en); err != nil {
			panic(err)
		}
	}

	set("at line %d", "in linea %d", "at line %d")
	set("at line %d, column %d", "in linea %d, columna %d", "at line %d, column %d")

	set("unknown word %s", "verbum ignotum %s", "unknown word %s")
	set("ambiguous form %s: %s", "forma ambigua %s: %s", "ambiguous form %s: %s")
	set("syntax error: %s", "syntaxis vitiosa: %s", "syntax error: %s")
	set("unbalanced block: %s", "clausura non congruit: %s", "unbalanced block: %s")

	set("variable %s is not declared", "variabilis %s non declarata est", "variable %s is not declared")
	set("variable %s has no value yet", "variabilis %s sine valore est", "variable %s has no value yet")
	set("wrong case for %s", "casus falsus pro %s", "wrong case for %s")
	set("division by zero", "divisio per nihil", "division by zero")
	set("uncaught exception %s", "exceptio non capta %s", "uncaught exception %s")

	return b
}

// Printer renders compile-time and runtime diagnostics in one language.
type Printer struct {
	p       *message.Printer
	english bool
}

// New returns a Latin printer, or an English one when english is set.
func New(english bool) *Printer {
	tag := latinTag
	if english {
		tag = language.English
	}
	return &Printer{
		p:       message.NewPrinter(tag, message.Catalog(msgCatalog)),
		english: english,
	}
}

// English reports the selected language.
func (pr *Printer) English() bool {
	return pr.english
}

// RenderCompile renders a load-time error with its kind tag, position and
// source excerpt.
func (pr *Printer) RenderCompile(e *compiler.CompileError) string {
	var msg string
	switch e.Kind {
	case compiler.KindUnknownWord:
		msg = pr.p.Sprintf("unknown word %s", e.Lexeme)
	case compiler.KindAmbiguousParse:
		msg = pr.p.Sprintf("ambiguous form %s: %s", e.Lexeme, joinCandidates(e.Candidates))
	case compiler.KindUnbalancedBlock:
		msg = pr.p.Sprintf("unbalanced block: %s", e.Message)
	default:
		msg = pr.p.Sprintf("syntax error: %s", e.Message)
	}

	var loc string
	if e.Column > 0 {
		loc = pr.p.Sprintf("at line %d, column %d", e.Line, e.Column)
	} else {
		loc = pr.p.Sprintf("at line %d", e.Line)
	}

	out := "[" + string(e.Kind) + "] " + msg + " " + loc
	if e.Context != "" {
		out += "\n" + e.Context
	}
	return out
}

// RenderRuntime renders a runtime error with its kind tag and line.
func (pr *Printer) RenderRuntime(e *vm.RuntimeError) string {
	var msg string
	switch e.Type {
	case vm.ErrorUndeclaredVariable:
		msg = pr.p.Sprintf("variable %s is not declared", e.Lexeme)
	case vm.ErrorUninitializedVariable:
		msg = pr.p.Sprintf("variable %s has no value yet", e.Lexeme)
	case vm.ErrorCaseMismatch:
		msg = pr.p.Sprintf("wrong case for %s", e.Lexeme) + " (" + e.Message + ")"
	case vm.ErrorDivisionByZero:
		msg = pr.p.Sprintf("division by zero")
	case vm.ErrorUncaughtException:
		msg = pr.p.Sprintf("uncaught exception %s", e.Lexeme)
	default:
		msg = pr.p.Sprintf("syntax error: %s", e.Message)
	}

	out := "[" + string(e.Type) + "] " + msg
	if e.Line > 0 {
		out += " " + pr.p.Sprintf("at line %d", e.Line)
	}
	return out
}

func joinCandidates(cs []string) string {
	out := ""
	for i, c := range cs {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
