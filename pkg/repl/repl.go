// Package repl provides the interactive session. Declarations and
// variable bindings persist across inputs; block statements do not fit a
// line-at-a-time session and are refused with a hint.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zurustar/latin/pkg/compiler"
	"github.com/zurustar/latin/pkg/compiler/lexer"
	"github.com/zurustar/latin/pkg/compiler/parser"
	"github.com/zurustar/latin/pkg/declension"
	"github.com/zurustar/latin/pkg/locale"
	"github.com/zurustar/latin/pkg/vm"
)

const prompt = "LATIN> "

// Session commands. VALE ends the session; ANGLICE and LATINE switch the
// diagnostic language.
const (
	cmdQuit    = "VALE"
	cmdEnglish = "ANGLICE"
	cmdLatin   = "LATINE"
)

// Config carries the streams and collaborators of one session.
type Config struct {
	Input   io.Reader
	Output  io.Writer
	Diag    io.Writer
	Printer *locale.Printer
	Logger  *slog.Logger
}

// Session is one interactive session.
type Session struct {
	cfg     Config
	scanner *bufio.Scanner
	lex     *lexer.Lexer
	global  *vm.Scope
	printer *locale.Printer
}

// New creates a session.
func New(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Printer == nil {
		cfg.Printer = locale.New(false)
	}
	return &Session{
		cfg:     cfg,
		scanner: bufio.NewScanner(cfg.Input),
		lex:     lexer.New(declension.NewTable()),
		global:  vm.NewScope(nil),
		printer: cfg.Printer,
	}
}

// Run reads and executes inputs until VALE or end of input. Errors are
// reported and the session continues; only a broken input stream ends it
// abnormally.
func (s *Session) Run() error {
	fmt.Fprintln(s.cfg.Output, "LATIN interactive session. VALE exits.")
	for {
		fmt.Fprint(s.cfg.Output, prompt)
		if !s.scanner.Scan() {
			fmt.Fprintln(s.cfg.Output)
			return s.scanner.Err()
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case cmdQuit:
			return nil
		case cmdEnglish:
			s.printer = locale.New(true)
			continue
		case cmdLatin:
			s.printer = locale.New(false)
			continue
		}

		s.eval(line)
	}
}

// eval compiles and executes one input line against the session state.
func (s *Session) eval(line string) {
	st, err := compiler.CompileLine(s.lex, line)
	if err != nil {
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintln(s.cfg.Diag, s.printer.RenderCompile(ce))
		} else {
			fmt.Fprintln(s.cfg.Diag, err)
		}
		return
	}
	if st == nil {
		return
	}

	switch st.Kind {
	case parser.StmtIf, parser.StmtWhile, parser.StmtElse, parser.StmtEndBlock,
		parser.StmtFunctionDef, parser.StmtReturn, parser.StmtCatch:
		if s.printer.English() {
			fmt.Fprintln(s.cfg.Diag, "blocks and functions need a complete program; put them in a file")
		} else {
			fmt.Fprintln(s.cfg.Diag, "clausurae et functiones programma integrum postulant; in archivo scribe")
		}
		return
	}

	// LEGO would contend with the session's own reader, so the line is
	// read here and handed to the engine as its whole input.
	input := io.Reader(strings.NewReader(""))
	if st.Kind == parser.StmtInput {
		fmt.Fprint(s.cfg.Output, "? ")
		if !s.scanner.Scan() {
			return
		}
		input = strings.NewReader(s.scanner.Text() + "\n")
	}

	prog := &parser.Program{Statements: []*parser.Statement{st}, Source: []string{line}}
	machine := vm.New(prog, vm.Config{
		Input:    input,
		Output:   s.cfg.Output,
		Diag:     s.cfg.Diag,
		Renderer: s.printer,
		Logger:   s.cfg.Logger,
		Global:   s.global,
	})
	machine.Run()
}
