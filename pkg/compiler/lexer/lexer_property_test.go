package lexer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/latin/pkg/declension"
	"github.com/zurustar/latin/pkg/numerus"
)

func TestNumeralAssignmentTokenizesProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("any canonical numeral survives an assignment line", prop.ForAll(
		func(n int) bool {
			l := New(declension.NewTable())
			l.Declare("NUMERUS")
			tokens, err := l.TokenizeLine("NUMERUSEST" + numerus.Encode(n))
			if err != nil || len(tokens) != 3 {
				return false
			}
			return tokens[2].Type == TOKEN_NUMERAL && tokens[2].Value == n
		},
		gen.IntRange(1, numerus.MaxCanonical),
	))

	properties.TestingRun(t)
}

func TestTokenizationDeterministicProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	lines := []string{
		"SCRIBENUMERUM",
		"NUMERUSESTADDENUMERUMNUMERO",
		"DUMNUMERUSMINORXI",
		"SCRIBE\"SALVE\"",
	}

	properties.Property("repeated tokenization of a line never differs", prop.ForAll(
		func(idx int) bool {
			l := New(declension.NewTable())
			l.Declare("NUMERUS")
			line := lines[idx]
			first, err1 := l.TokenizeLine(line)
			second, err2 := l.TokenizeLine(line)
			if err1 != nil || err2 != nil || len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(lines)-1),
	))

	properties.TestingRun(t)
}
