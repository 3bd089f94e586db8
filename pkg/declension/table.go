package declension

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var tableYAML []byte

// Entry holds the six inflected forms of one lemma.
type Entry struct {
	Lemma      string `yaml:"lemma"`
	Class      string `yaml:"class"`
	Genitive   string `yaml:"genitive"`
	Accusative string `yaml:"accusative"`
	Dative     string `yaml:"dative"`
	Ablative   string `yaml:"ablative"`
	Vocative   string `yaml:"vocative"`
}

// Form returns the inflected form for the given case. The nominative is
// the lemma itself.
func (e *Entry) Form(c Case) string {
	switch c {
	case Nominative:
		return e.Lemma
	case Genitive:
		return e.Genitive
	case Accusative:
		return e.Accusative
	case Dative:
		return e.Dative
	case Ablative:
		return e.Ablative
	case Vocative:
		return e.Vocative
	}
	return ""
}

// CasesOf returns every case the given form can express for this lemma,
// or the empty set if the form does not belong to the lemma at all.
func (e *Entry) CasesOf(form string) CaseSet {
	var set CaseSet
	for c := Nominative; c < numCases; c++ {
		if e.Form(c) == form {
			set = set.With(c)
		}
	}
	return set
}

var builtins = func() map[string]*Entry {
	var doc struct {
		Nouns []*Entry `yaml:"nouns"`
	}
	if err := yaml.Unmarshal(tableYAML, &doc); err != nil {
		panic(fmt.Sprintf("declension: embedded table is invalid: %v", err))
	}
	m := make(map[string]*Entry, len(doc.Nouns))
	for _, e := range doc.Nouns {
		m[e.Lemma] = e
	}
	return m
}()

// Table maps lemmas to declension entries. It starts with the built-in
// lexicon and grows as fresh lemmas are derived at declaration time.
type Table struct {
	entries map[string]*Entry
}

// NewTable returns a table seeded with the built-in lexicon.
func NewTable() *Table {
	entries := make(map[string]*Entry, len(builtins)+16)
	for lemma, e := range builtins {
		entries[lemma] = e
	}
	return &Table{entries: entries}
}

// Entry returns the entry for a lemma, if present.
func (t *Table) Entry(lemma string) (*Entry, bool) {
	e, ok := t.entries[lemma]
	return e, ok
}

// Declare returns the entry for a lemma, deriving and recording one first
// if the lemma is not yet known.
func (t *Table) Declare(lemma string) *Entry {
	if e, ok := t.entries[lemma]; ok {
		return e
	}
	e := Derive(lemma)
	t.entries[lemma] = e
	return e
}

// Derive synthesizes the inflected forms of a fresh lemma by classifying
// its nominative ending into one of the suffix-substitution classes.
func Derive(lemma string) *Entry {
	switch {
	case strings.HasSuffix(lemma, "US"):
		root := lemma[:len(lemma)-2]
		return &Entry{
			Lemma: lemma, Class: "second-masculine",
			Genitive: root + "I", Accusative: root + "UM",
			Dative: root + "O", Ablative: root + "O", Vocative: root + "E",
		}
	case strings.HasSuffix(lemma, "OR"):
		return &Entry{
			Lemma: lemma, Class: "third",
			Genitive: lemma + "IS", Accusative: lemma + "EM",
			Dative: lemma + "I", Ablative: lemma + "E", Vocative: lemma,
		}
	case strings.HasSuffix(lemma, "IO"):
		return &Entry{
			Lemma: lemma, Class: "third",
			Genitive: lemma + "NIS", Accusative: lemma + "NEM",
			Dative: lemma + "NI", Ablative: lemma + "NE", Vocative: lemma,
		}
	case strings.HasSuffix(lemma, "A"):
		root := lemma[:len(lemma)-1]
		return &Entry{
			Lemma: lemma, Class: "first",
			Genitive: root + "AE", Accusative: root + "AM",
			Dative: root + "AE", Ablative: root + "A", Vocative: root + "A",
		}
	case strings.HasSuffix(lemma, "VM") || strings.HasSuffix(lemma, "UM"):
		root := lemma[:len(lemma)-2]
		return &Entry{
			Lemma: lemma, Class: "second-neuter",
			Genitive: root + "I", Accusative: lemma,
			Dative: root + "O", Ablative: root + "O", Vocative: lemma,
		}
	default:
		return &Entry{
			Lemma: lemma, Class: "second-masculine",
			Genitive: lemma + "I", Accusative: lemma + "M",
			Dative: lemma + "O", Ablative: lemma + "O", Vocative: lemma + "E",
		}
	}
}

// Match is one result of a reverse lookup: a lemma whose declension
// produces the looked-up form, with every case that form can express.
type Match struct {
	Lemma string
	Cases CaseSet
}

// Reverse finds which of the declared lemmas an inflected form belongs to.
// It returns all matching lemmas; the caller treats more than one match as
// an ambiguity rather than picking silently.
func (t *Table) Reverse(form string, declared []string) []Match {
	var matches []Match
	for _, lemma := range declared {
		e, ok := t.entries[lemma]
		if !ok {
			continue
		}
		if set := e.CasesOf(form); !set.Empty() {
			matches = append(matches, Match{Lemma: lemma, Cases: set})
		}
	}
	return matches
}
