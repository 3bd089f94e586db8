// Package vm executes resolved LATIN programs. One engine value owns all
// mutable state: the scope stack, the call stack, the handler stack and
// the program counter.
package vm

import "github.com/zurustar/latin/pkg/numerus"

// ValueKind tags the value union.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindStr
)

// Value is a runtime value: an integer or a string. The kind is decided
// at assignment time and never coerced afterwards.
type Value struct {
	Kind ValueKind
	Int  int
	Str  string
}

// NewInt wraps an integer.
func NewInt(n int) Value {
	return Value{Kind: KindInt, Int: n}
}

// NewStr wraps a string.
func NewStr(s string) Value {
	return Value{Kind: KindStr, Str: s}
}

// Render spells the value the way SCRIBE writes it: integers as Roman
// numerals (zero as NIHIL), strings verbatim.
func (v Value) Render() string {
	if v.Kind == KindInt {
		return numerus.Encode(v.Int)
	}
	return v.Str
}

// Equal compares two values. Values of different kinds are never equal;
// nothing is coerced.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	if v.Kind == KindInt {
		return v.Int == o.Int
	}
	return v.Str == o.Str
}
