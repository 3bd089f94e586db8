package lexer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zurustar/latin/pkg/declension"
	"github.com/zurustar/latin/pkg/numerus"
)

// ErrorKind classifies tokenizer failures.
type ErrorKind string

const (
	ErrUnknownWord    ErrorKind = "UNKNOWN_WORD"
	ErrAmbiguousParse ErrorKind = "AMBIGUOUS_PARSE"
	ErrSyntax         ErrorKind = "SYNTAX_ERROR"
)

// Error is a tokenizer failure at one position of a line.
type Error struct {
	Kind       ErrorKind
	Column     int      // 1-indexed byte offset within the line
	Text       string   // the offending remaining text or lexeme
	Candidates []string // AmbiguousParse: the lemmas that tied
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == ErrAmbiguousParse {
		return fmt.Sprintf("[%s] %q at column %d matches %s", e.Kind, e.Text, e.Column, strings.Join(e.Candidates, " and "))
	}
	return fmt.Sprintf("[%s] %q at column %d", e.Kind, e.Text, e.Column)
}

// Lexer tokenizes LATIN source lines. It carries the declension table and
// the set of lemmas declared so far: the variable tier only ever matches
// declared lemmas, so the same line tokenizes differently before and after
// the declaration that introduces a word.
type Lexer struct {
	table    *declension.Table
	declared map[string]bool
}

// New creates a Lexer over the given declension table.
func New(table *declension.Table) *Lexer {
	return &Lexer{
		table:    table,
		declared: make(map[string]bool),
	}
}

// Declare records a lemma as declared, deriving its declension entry if
// the lexicon does not already hold one.
func (l *Lexer) Declare(lemma string) {
	l.table.Declare(lemma)
	l.declared[lemma] = true
}

// Declared reports whether a lemma has been declared.
func (l *Lexer) Declared(lemma string) bool {
	return l.declared[lemma]
}

// Table returns the underlying declension table.
func (l *Lexer) Table() *declension.Table {
	return l.table
}

// TokenizeLine tokenizes one source line. The comment suffix is stripped
// first; an empty remainder yields no tokens. At each cursor position the
// candidate tiers are tried in strict priority order: keyword, declared
// variable, Roman numeral, NIHIL, string literal. Directly after SIT the
// literal tiers are skipped and the whole remainder names the declared
// noun instead.
func (l *Lexer) TokenizeLine(line string) ([]Token, error) {
	text := strings.TrimSpace(StripComment(line))
	if text == "" {
		return nil, nil
	}

	var tokens []Token
	pos := 0
	for pos < len(text) {
		rest := text[pos:]

		// Keyword tier runs in every position.
		if kw := matchKeyword(rest); kw != "" {
			tokens = append(tokens, Token{Type: TOKEN_KEYWORD, Literal: kw, Column: pos + 1})
			pos += len(kw)
			continue
		}

		// Declaration position: the token before the cursor is SIT.
		if n := len(tokens); n > 0 && tokens[n-1].IsKeyword(KwSit) {
			tok, err := l.declarationName(rest, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos += len(tok.Literal)
			continue
		}

		tok, matched, err := l.matchVariable(rest, pos)
		if err != nil {
			return nil, err
		}
		if matched {
			tokens = append(tokens, tok)
			pos += len(tok.Literal)
			continue
		}

		if lexeme, value, ok := matchNumeral(rest); ok {
			tokens = append(tokens, Token{Type: TOKEN_NUMERAL, Literal: lexeme, Value: value, Column: pos + 1})
			pos += len(lexeme)
			continue
		}

		if strings.HasPrefix(rest, numerus.Sentinel) {
			tokens = append(tokens, Token{Type: TOKEN_NIHIL, Literal: numerus.Sentinel, Column: pos + 1})
			pos += len(numerus.Sentinel)
			continue
		}

		if rest[0] == '"' {
			content, consumed, ok := scanString(rest)
			if !ok {
				return nil, &Error{Kind: ErrSyntax, Column: pos + 1, Text: rest}
			}
			tokens = append(tokens, Token{Type: TOKEN_STRING, Literal: content, Column: pos + 1})
			pos += consumed
			continue
		}

		return nil, &Error{Kind: ErrUnknownWord, Column: pos + 1, Text: rest}
	}
	return tokens, nil
}

// declarationName resolves the noun directly after SIT. A redeclaration of
// an already-declared lemma matches through its inflections; otherwise the
// whole remainder must be derivable as a fresh nominative. Numeral, NIHIL
// and string tiers do not apply here: a declaration names a noun, and
// lemmas beginning with M, D, C, L, X, V or I must not be eaten as
// numerals.
func (l *Lexer) declarationName(rest string, pos int) (Token, error) {
	tok, matched, err := l.matchVariable(rest, pos)
	if err != nil {
		return Token{}, err
	}
	if matched {
		return tok, nil
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < 'A' || rest[i] > 'Z' {
			return Token{}, &Error{Kind: ErrUnknownWord, Column: pos + 1, Text: rest}
		}
	}
	return Token{
		Type:    TOKEN_VARIABLE,
		Literal: rest,
		Lemma:   rest,
		Cases:   declension.CaseSet(0).With(declension.Nominative),
		Column:  pos + 1,
	}, nil
}

// candidate is one declared lemma whose inflection prefixes the remaining
// text.
type candidate struct {
	lemma  string
	length int
	cases  declension.CaseSet
}

// matchVariable resolves the declared-variable tier at the cursor. All
// candidates are generated first and resolved deterministically: longest
// match wins, except that a shorter match is preferred when the longest
// leaves text that starts with no keyword while the shorter one does
// (SUMMAE would otherwise swallow the EST of SUMMAEST...). Two distinct
// lemmas tying at the chosen length is an explicit ambiguity, never an
// arbitrary pick.
func (l *Lexer) matchVariable(rest string, pos int) (Token, bool, error) {
	var cands []candidate
	for lemma := range l.declared {
		entry, ok := l.table.Entry(lemma)
		if !ok {
			continue
		}
		for c := declension.Nominative; c <= declension.Vocative; c++ {
			form := entry.Form(c)
			if form == "" || !strings.HasPrefix(rest, form) {
				continue
			}
			merged := false
			for i := range cands {
				if cands[i].lemma == lemma && cands[i].length == len(form) {
					cands[i].cases = cands[i].cases.With(c)
					merged = true
					break
				}
			}
			if !merged {
				cands = append(cands, candidate{lemma: lemma, length: len(form), cases: declension.CaseSet(0).With(c)})
			}
		}
	}
	if len(cands) == 0 {
		return Token{}, false, nil
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].length != cands[j].length {
			return cands[i].length > cands[j].length
		}
		return cands[i].lemma < cands[j].lemma
	})

	chosen := 0
	if matchKeyword(rest[cands[0].length:]) == "" {
		for i := 1; i < len(cands); i++ {
			if matchKeyword(rest[cands[i].length:]) != "" {
				chosen = i
				break
			}
		}
	}

	// A second distinct lemma at the same length ties with the choice.
	for i := range cands {
		if i != chosen && cands[i].length == cands[chosen].length && cands[i].lemma != cands[chosen].lemma {
			names := []string{cands[chosen].lemma, cands[i].lemma}
			sort.Strings(names)
			return Token{}, false, &Error{
				Kind:       ErrAmbiguousParse,
				Column:     pos + 1,
				Text:       rest[:cands[chosen].length],
				Candidates: names,
			}
		}
	}

	c := cands[chosen]
	return Token{
		Type:    TOKEN_VARIABLE,
		Literal: rest[:c.length],
		Lemma:   c.lemma,
		Cases:   c.cases,
		Column:  pos + 1,
	}, true, nil
}

// matchKeyword returns the longest keyword prefixing s, or "".
func matchKeyword(s string) string {
	best := ""
	for _, kw := range Keywords {
		if len(kw) > len(best) && strings.HasPrefix(s, kw) {
			best = kw
		}
	}
	return best
}

// matchNumeral finds the longest canonical Roman numeral at the start of
// s. The maximal run of numeral characters is shrunk from the right until
// it decodes canonically; a run with no canonical prefix is not a match.
func matchNumeral(s string) (string, int, bool) {
	run := 0
	for run < len(s) && numerus.IsNumeralChar(s[run]) {
		run++
	}
	for n := run; n > 0; n-- {
		if value, err := numerus.Decode(s[:n]); err == nil {
			return s[:n], value, true
		}
	}
	return "", 0, false
}

// scanString consumes a double-quoted literal at the start of s, returning
// the unescaped content and the number of bytes consumed. A backslash
// escapes the next character. ok is false when the quote never closes.
func scanString(s string) (content string, consumed int, ok bool) {
	var b strings.Builder
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, false
			}
			b.WriteByte(s[i+1])
			i += 2
		case '"':
			return b.String(), i + 1, true
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return "", 0, false
}

// StripComment removes the comment suffix: everything from the first
// semicolon that sits outside a string literal.
func StripComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return line[:i]
			}
		}
	}
	return line
}
