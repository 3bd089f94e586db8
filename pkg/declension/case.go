// Package declension maps Latin lemmas to their per-case inflected forms.
// The tokenizer depends on it to recover word boundaries: a variable is
// recognised in source text only through one of the forms recorded here.
package declension

// Case is a grammatical case. The case of an operand determines its role
// in a statement.
type Case int

const (
	Nominative Case = iota
	Genitive
	Accusative
	Dative
	Ablative
	Vocative
	numCases
)

var caseNames = map[Case]string{
	Nominative: "nominative",
	Genitive:   "genitive",
	Accusative: "accusative",
	Dative:     "dative",
	Ablative:   "ablative",
	Vocative:   "vocative",
}

// String returns the case name.
func (c Case) String() string {
	if name, ok := caseNames[c]; ok {
		return name
	}
	return "unknown"
}

// CaseSet is a set of cases. A single inflected form frequently serves
// several cases (NUMERO is both dative and ablative; first-declension
// nominative, ablative and vocative coincide), so a matched form resolves
// to a set rather than one case.
type CaseSet uint8

// With returns the set extended by c.
func (s CaseSet) With(c Case) CaseSet {
	return s | 1<<uint(c)
}

// Has reports whether c is in the set.
func (s CaseSet) Has(c Case) bool {
	return s&(1<<uint(c)) != 0
}

// Empty reports whether the set holds no case.
func (s CaseSet) Empty() bool {
	return s == 0
}

// String lists the contained cases separated by "/".
func (s CaseSet) String() string {
	out := ""
	for c := Nominative; c < numCases; c++ {
		if s.Has(c) {
			if out != "" {
				out += "/"
			}
			out += c.String()
		}
	}
	if out == "" {
		return "none"
	}
	return out
}
