// Package numerus converts between integers and Roman numeral strings.
package numerus

import "fmt"

// Sentinel is the spelled-out zero. Zero is never written as a numeral;
// the language represents it with this distinct word.
const Sentinel = "NIHIL"

// MaxCanonical is the largest value the classical subtractive notation
// writes without overlines.
const MaxCanonical = 3999

type step struct {
	value   int
	numeral string
}

// Ordered largest-first. Greedy subtraction against this table yields the
// canonical form directly.
var steps = []step{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

var charValues = map[byte]int{
	'M': 1000, 'D': 500, 'C': 100, 'L': 50, 'X': 10, 'V': 5, 'I': 1,
}

// FormatError reports a string that is not a canonical Roman numeral.
type FormatError struct {
	Input string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("not a canonical Roman numeral: %q", e.Input)
}

// IsNumeralChar reports whether c can appear in a Roman numeral.
func IsNumeralChar(c byte) bool {
	_, ok := charValues[c]
	return ok
}

// Encode renders n as a canonical Roman numeral. Values below one have no
// numeral and render as the NIHIL sentinel.
func Encode(n int) string {
	if n <= 0 {
		return Sentinel
	}
	out := make([]byte, 0, 16)
	for _, s := range steps {
		for n >= s.value {
			out = append(out, s.numeral...)
			n -= s.value
		}
	}
	return string(out)
}

// Decode converts a Roman numeral string to an integer. It scans right to
// left summing character values, subtracting a value that precedes a larger
// one, then rejects any form whose canonical spelling differs from the
// input. The sentinel NIHIL is not a numeral and does not decode.
func Decode(s string) (int, error) {
	if s == "" {
		return 0, &FormatError{Input: s}
	}
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := charValues[s[i]]
		if !ok {
			return 0, &FormatError{Input: s}
		}
		if v < prev {
			total -= v
		} else {
			total += v
		}
		prev = v
	}
	if total <= 0 || Encode(total) != s {
		return 0, &FormatError{Input: s}
	}
	return total, nil
}
