package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/latin/pkg/compiler"
	"github.com/zurustar/latin/pkg/numerus"
)

func runLines(lines []string) (string, ExitOutcome) {
	prog, err := compiler.Compile(strings.Join(lines, "\n"))
	if err != nil {
		return "", ExitOutcome{}
	}
	var out bytes.Buffer
	machine := New(prog, Config{
		Input:  strings.NewReader(""),
		Output: &out,
		Diag:   &bytes.Buffer{},
		Logger: quietLogger(),
	})
	outcome := machine.Run()
	return out.String(), outcome
}

func TestPrintRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a stored numeral prints back as itself", prop.ForAll(
		func(n int) bool {
			out, outcome := runLines([]string{
				"SITNUMERUS",
				"NUMERUSEST" + numerus.Encode(n),
				"SCRIBENUMERUM",
			})
			return outcome.Success && out == numerus.Encode(n)+"\n"
		},
		gen.IntRange(1, numerus.MaxCanonical),
	))

	properties.TestingRun(t)
}

func TestAdditionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("ADDE agrees with integer addition", prop.ForAll(
		func(a, b int) bool {
			out, outcome := runLines([]string{
				"SITPRIMUS",
				"SITSECUNDUS",
				"SITNUMERUS",
				"PRIMUSEST" + numerus.Encode(a),
				"SECUNDUSEST" + numerus.Encode(b),
				"NUMERUSESTADDEPRIMUMSECUNDO",
				"SCRIBENUMERUM",
			})
			return outcome.Success && out == numerus.Encode(a+b)+"\n"
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
	))

	properties.Property("DEME agrees with integer subtraction", prop.ForAll(
		func(a, b int) bool {
			out, outcome := runLines([]string{
				"SITPRIMUS",
				"SITSECUNDUS",
				"SITNUMERUS",
				"PRIMUSEST" + numerus.Encode(a+b),
				"SECUNDUSEST" + numerus.Encode(b),
				"NUMERUSESTDEMEPRIMUMSECUNDO",
				"SCRIBENUMERUM",
			})
			return outcome.Success && out == numerus.Encode(a)+"\n"
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t)
}
