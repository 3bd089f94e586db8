package declension

import "testing"

func TestBuiltinForms(t *testing.T) {
	table := NewTable()
	entry, ok := table.Entry("NUMERUS")
	if !ok {
		t.Fatal("NUMERUS missing from built-in lexicon")
	}
	tests := []struct {
		c    Case
		want string
	}{
		{Nominative, "NUMERUS"},
		{Genitive, "NUMERI"},
		{Accusative, "NUMERUM"},
		{Dative, "NUMERO"},
		{Ablative, "NUMERO"},
		{Vocative, "NUMERE"},
	}
	for _, tt := range tests {
		if got := entry.Form(tt.c); got != tt.want {
			t.Errorf("NUMERUS %s = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestCasesOfSyncretism(t *testing.T) {
	table := NewTable()

	numerus, _ := table.Entry("NUMERUS")
	set := numerus.CasesOf("NUMERO")
	if !set.Has(Dative) || !set.Has(Ablative) {
		t.Errorf("NUMERO cases = %s, want dative and ablative", set)
	}
	if set.Has(Nominative) {
		t.Errorf("NUMERO cases = %s, should not include nominative", set)
	}

	rosa, _ := table.Entry("ROSA")
	set = rosa.CasesOf("ROSA")
	for _, c := range []Case{Nominative, Ablative, Vocative} {
		if !set.Has(c) {
			t.Errorf("ROSA cases = %s, want %s included", set, c)
		}
	}

	if !numerus.CasesOf("CANIS").Empty() {
		t.Error("foreign form matched NUMERUS")
	}
}

func TestDeriveClasses(t *testing.T) {
	tests := []struct {
		lemma string
		class string
		acc   string
		dat   string
		voc   string
	}{
		{"TOTUS", "second-masculine", "TOTUM", "TOTO", "TOTE"},
		{"AMOR", "third", "AMOREM", "AMORI", "AMOR"},
		{"LECTIO", "third", "LECTIONEM", "LECTIONI", "LECTIO"},
		{"MENSA", "first", "MENSAM", "MENSAE", "MENSA"},
		{"TEMPLVM", "second-neuter", "TEMPLVM", "TEMPLO", "TEMPLVM"},
		{"SCRIPTUM", "second-neuter", "SCRIPTUM", "SCRIPTO", "SCRIPTUM"},
		{"SOL", "second-masculine", "SOLM", "SOLO", "SOLE"},
	}
	for _, tt := range tests {
		e := Derive(tt.lemma)
		if e.Class != tt.class {
			t.Errorf("Derive(%s).Class = %q, want %q", tt.lemma, e.Class, tt.class)
		}
		if e.Accusative != tt.acc {
			t.Errorf("Derive(%s).Accusative = %q, want %q", tt.lemma, e.Accusative, tt.acc)
		}
		if e.Dative != tt.dat {
			t.Errorf("Derive(%s).Dative = %q, want %q", tt.lemma, e.Dative, tt.dat)
		}
		if e.Vocative != tt.voc {
			t.Errorf("Derive(%s).Vocative = %q, want %q", tt.lemma, e.Vocative, tt.voc)
		}
	}
}

func TestDeclarePrefersBuiltinAndCaches(t *testing.T) {
	table := NewTable()

	builtin := table.Declare("NUMERUS")
	if builtin.Genitive != "NUMERI" {
		t.Errorf("Declare(NUMERUS) did not return the built-in entry")
	}

	first := table.Declare("TOTUS")
	second := table.Declare("TOTUS")
	if first != second {
		t.Error("Declare derived the same lemma twice")
	}
}

func TestReverse(t *testing.T) {
	table := NewTable()
	table.Declare("NUMERUS")
	table.Declare("PRIMUS")

	matches := table.Reverse("NUMERO", []string{"NUMERUS", "PRIMUS"})
	if len(matches) != 1 || matches[0].Lemma != "NUMERUS" {
		t.Fatalf("Reverse(NUMERO) = %v, want single NUMERUS match", matches)
	}

	// TOTUS declines to TOTO (dative) and so does the default-class TOT.
	table.Declare("TOTUS")
	table.Declare("TOT")
	matches = table.Reverse("TOTO", []string{"TOTUS", "TOT"})
	if len(matches) != 2 {
		t.Fatalf("Reverse(TOTO) = %v, want two matches", matches)
	}
}
