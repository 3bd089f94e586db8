// Package lexer tokenizes LATIN source lines. Word boundaries are not
// delimited by whitespace; they are recovered by matching keywords,
// declared-variable inflections, Roman numerals, the NIHIL sentinel and
// string literals in a fixed priority order.
package lexer

import "github.com/zurustar/latin/pkg/declension"

// TokenType represents the type of a token.
type TokenType int

const (
	TOKEN_KEYWORD TokenType = iota
	TOKEN_VARIABLE
	TOKEN_NUMERAL
	TOKEN_NIHIL
	TOKEN_STRING
)

var tokenTypeNames = map[TokenType]string{
	TOKEN_KEYWORD:  "KEYWORD",
	TOKEN_VARIABLE: "VARIABLE",
	TOKEN_NUMERAL:  "NUMERAL",
	TOKEN_NIHIL:    "NIHIL",
	TOKEN_STRING:   "STRING",
}

// String returns a string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents one lexical token. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Literal string             // matched lexeme; for strings, the unescaped content
	Lemma   string             // variable tokens: the nominative identity
	Cases   declension.CaseSet // variable tokens: cases the matched form can express
	Value   int                // numeral tokens: decoded value (0 for NIHIL)
	Column  int                // 1-indexed byte offset within the line
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(kw string) bool {
	return t.Type == TOKEN_KEYWORD && t.Literal == kw
}

// Keywords of the language.
const (
	KwSit        = "SIT"
	KwEst        = "EST"
	KwSi         = "SI"
	KwAliter     = "ALITER"
	KwFinis      = "FINIS"
	KwScribe     = "SCRIBE"
	KwLego       = "LEGO"
	KwLege       = "LEGE"
	KwAdde       = "ADDE"
	KwDeme       = "DEME"
	KwAequat     = "AEQUAT"
	KwDum        = "DUM"
	KwFac        = "FAC"
	KwReddo      = "REDDO"
	KwVoca       = "VOCA"
	KwDuce       = "DVCE"
	KwMultiplica = "MVLTIPLICA"
	KwMaius      = "MAIVS"
	KwMinor      = "MINOR"
	KwIunge      = "IVNGE"
	KwIncipit    = "INCIPITCVM"
	KwFinitur    = "FINITVRCVM"
	KwContinet   = "CONTINET"
	KwIndicede   = "INDICEDE"
	KwIace       = "IACE"
	KwCape       = "CAPE"
	KwAudi       = "AVDI"
	KwNota       = "NOTA"
)

// Keywords lists every keyword. Matching takes the longest keyword that
// prefixes the remaining text, so the order here carries no significance.
var Keywords = []string{
	KwSit, KwEst, KwSi, KwAliter, KwFinis, KwScribe, KwLego, KwLege,
	KwAdde, KwDeme, KwAequat, KwDum, KwFac, KwReddo, KwVoca, KwDuce,
	KwMultiplica, KwMaius, KwMinor, KwIunge, KwIncipit, KwFinitur,
	KwContinet, KwIndicede, KwIace, KwCape, KwAudi, KwNota,
}
