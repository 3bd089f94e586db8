// Package app wires the interpreter's pieces together: it picks the
// source to run, compiles it, and drives the execution engine.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/zurustar/latin/pkg/compiler"
	"github.com/zurustar/latin/pkg/locale"
	"github.com/zurustar/latin/pkg/logger"
	"github.com/zurustar/latin/pkg/repl"
	"github.com/zurustar/latin/pkg/vm"
)

// Config holds the resolved settings of one invocation.
type Config struct {
	English  bool
	LogLevel string
	Example  string // bundled example name, empty when unused
	Examples fs.FS  // embedded example programs

	// Streams, overridable for tests; nil means the os defaults.
	Input  io.Reader
	Output io.Writer
	Diag   io.Writer
}

// Application runs one invocation of the interpreter.
type Application struct {
	cfg Config
	log *slog.Logger
}

// New creates an application.
func New(cfg Config) *Application {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Diag == nil {
		cfg.Diag = os.Stderr
	}
	return &Application{cfg: cfg}
}

// Run executes a source file, a bundled example, or, with neither, an
// interactive session. A failed program run returns the underlying
// error; the diagnostic has already been written by then.
func (a *Application) Run(file string) error {
	if err := logger.InitLogger(a.cfg.LogLevel); err != nil {
		return err
	}
	a.log = logger.GetLogger()
	printer := locale.New(a.cfg.English)

	var source string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		source = string(data)
		a.log.Debug("running file", "path", file)

	case a.cfg.Example != "":
		data, err := a.readExample(a.cfg.Example)
		if err != nil {
			return err
		}
		source = string(data)
		a.log.Debug("running bundled example", "name", a.cfg.Example)

	default:
		session := repl.New(repl.Config{
			Input:   a.cfg.Input,
			Output:  a.cfg.Output,
			Diag:    a.cfg.Diag,
			Printer: printer,
			Logger:  a.log,
		})
		return session.Run()
	}

	return a.RunSource(source, printer)
}

// RunSource compiles and executes one program.
func (a *Application) RunSource(source string, printer *locale.Printer) error {
	if a.log == nil {
		a.log = logger.GetLogger()
	}
	prog, err := compiler.Compile(source)
	if err != nil {
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintln(a.cfg.Diag, printer.RenderCompile(ce))
		}
		return err
	}

	machine := vm.New(prog, vm.Config{
		Input:    a.cfg.Input,
		Output:   a.cfg.Output,
		Diag:     a.cfg.Diag,
		Renderer: printer,
		Logger:   a.log,
	})
	outcome := machine.Run()
	if !outcome.Success {
		return outcome.Err
	}
	return nil
}

// readExample loads a bundled example by name, with or without the
// .latin suffix. An unknown name lists what is available.
func (a *Application) readExample(name string) ([]byte, error) {
	if a.cfg.Examples == nil {
		return nil, fmt.Errorf("no bundled examples available")
	}
	if !strings.HasSuffix(name, ".latin") {
		name += ".latin"
	}
	data, err := fs.ReadFile(a.cfg.Examples, "examples/"+name)
	if err != nil {
		return nil, fmt.Errorf("unknown example %s (available: %s)", name, strings.Join(a.exampleNames(), ", "))
	}
	return data, nil
}

func (a *Application) exampleNames() []string {
	var names []string
	entries, err := fs.ReadDir(a.cfg.Examples, "examples")
	if err != nil {
		return names
	}
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".latin"))
	}
	sort.Strings(names)
	return names
}
