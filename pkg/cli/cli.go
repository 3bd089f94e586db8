// Package cli defines the command-line surface of the interpreter.
package cli

import (
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zurustar/latin/pkg/app"
)

// NewRootCommand builds the root command. With a file argument the file
// runs; with --example a bundled program runs; with neither, an
// interactive session starts.
func NewRootCommand(examples fs.FS) *cobra.Command {
	cfg := app.Config{Examples: examples}

	cmd := &cobra.Command{
		Use:   "latin [file]",
		Short: "Interpreter for the LATIN language",
		Long: `latin runs programs written in LATIN, a language whose word boundaries
are recovered from Latin noun morphology instead of whitespace.

Diagnostics are reported in Latin; pass --english for English.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyEnv(&cfg)
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return app.New(cfg).Run(file)
		},
	}

	cmd.Flags().BoolVarP(&cfg.English, "english", "e", false, "render diagnostics in English")
	cmd.Flags().StringVarP(&cfg.LogLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&cfg.Example, "example", "", "run a bundled example program by name")
	return cmd
}

// applyEnv folds the environment into the config. Flags win over the
// environment.
func applyEnv(cfg *app.Config) {
	if !cfg.English {
		if v := os.Getenv("LATIN_ENGLISH"); v != "" {
			cfg.English = v == "1" || strings.EqualFold(v, "true")
		}
	}
	if cfg.LogLevel == "info" {
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			cfg.LogLevel = strings.ToLower(v)
		}
	}
}
