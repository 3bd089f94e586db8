package cli

import (
	"testing"
	"testing/fstest"

	"github.com/zurustar/latin/pkg/app"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand(fstest.MapFS{})

	for _, name := range []string{"english", "log-level", "example"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s missing", name)
		}
	}
	if got := cmd.Flags().Lookup("log-level").DefValue; got != "info" {
		t.Errorf("log-level default = %q, want info", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LATIN_ENGLISH", "1")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := app.Config{LogLevel: "info"}
	applyEnv(&cfg)
	if !cfg.English {
		t.Error("LATIN_ENGLISH=1 ignored")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug from environment", cfg.LogLevel)
	}
}

func TestFlagsBeatEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	cfg := app.Config{LogLevel: "warn"} // explicitly set by flag parsing
	applyEnv(&cfg)
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, flag value should win", cfg.LogLevel)
	}
}
