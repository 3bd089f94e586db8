package app

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/zurustar/latin/pkg/locale"
	"github.com/zurustar/latin/pkg/vm"
)

func TestRunSource(t *testing.T) {
	var out, diag bytes.Buffer
	a := New(Config{
		LogLevel: "error",
		Input:    strings.NewReader(""),
		Output:   &out,
		Diag:     &diag,
	})

	err := a.RunSource("SITNUMERUS\nNUMERUSESTXLII\nSCRIBENUMERUM", locale.New(false))
	if err != nil {
		t.Fatalf("RunSource failed: %v", err)
	}
	if out.String() != "XLII\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunSourceRendersCompileError(t *testing.T) {
	var out, diag bytes.Buffer
	a := New(Config{
		LogLevel: "error",
		Input:    strings.NewReader(""),
		Output:   &out,
		Diag:     &diag,
	})

	err := a.RunSource("SCRIBEFORTUNAM", locale.New(true))
	if err == nil {
		t.Fatal("compile error not surfaced")
	}
	if !strings.Contains(diag.String(), "[UNKNOWN_WORD]") {
		t.Errorf("diag = %q, want rendered compile error", diag.String())
	}
}

func TestRunSourceRuntimeFailure(t *testing.T) {
	var out, diag bytes.Buffer
	a := New(Config{
		LogLevel: "error",
		Input:    strings.NewReader(""),
		Output:   &out,
		Diag:     &diag,
	})

	err := a.RunSource("SITNUMERUS\nSCRIBENUMERUM", locale.New(false))
	rerr, ok := err.(*vm.RuntimeError)
	if !ok || rerr.Type != vm.ErrorUninitializedVariable {
		t.Fatalf("err = %v, want uninitialized-variable runtime error", err)
	}
	if !strings.Contains(diag.String(), "[UNINITIALIZED_VARIABLE]") {
		t.Errorf("diag = %q, want rendered runtime error", diag.String())
	}
}

func TestRunBundledExample(t *testing.T) {
	examples := fstest.MapFS{
		"examples/salve.latin": &fstest.MapFile{
			Data: []byte("SITVERBVM\nVERBVMEST\"SALVE\"\nSCRIBEVERBVM\n"),
		},
	}

	var out, diag bytes.Buffer
	a := New(Config{
		LogLevel: "error",
		Example:  "salve",
		Examples: examples,
		Input:    strings.NewReader(""),
		Output:   &out,
		Diag:     &diag,
	})

	if err := a.Run(""); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.String() != "SALVE\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunUnknownExampleListsAvailable(t *testing.T) {
	examples := fstest.MapFS{
		"examples/salve.latin":   &fstest.MapFile{Data: []byte("")},
		"examples/numerus.latin": &fstest.MapFile{Data: []byte("")},
	}

	a := New(Config{
		LogLevel: "error",
		Example:  "ignotum",
		Examples: examples,
		Output:   &bytes.Buffer{},
		Diag:     &bytes.Buffer{},
	})

	err := a.Run("")
	if err == nil {
		t.Fatal("unknown example accepted")
	}
	if !strings.Contains(err.Error(), "numerus, salve") {
		t.Errorf("err = %v, want sorted example listing", err)
	}
}
