package vm

// Variable is a declared name bound in exactly one scope. A freshly
// declared variable has no value; reading it before the first assignment
// is an error, never a default.
type Variable struct {
	Lemma string
	Set   bool
	Value Value
}

// Scope is an ordered mapping of lemma to variable. Scopes form a stack:
// the global scope plus one per active call frame, linked through the
// parent pointer. The engine is strictly single-threaded, so scopes carry
// no locking.
type Scope struct {
	variables map[string]*Variable
	parent    *Scope
}

// NewScope creates a scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		variables: make(map[string]*Variable),
		parent:    parent,
	}
}

// Declare creates (or resets) a variable in this scope, shadowing any
// binding of the same lemma in a parent scope.
func (s *Scope) Declare(lemma string) *Variable {
	v := &Variable{Lemma: lemma}
	s.variables[lemma] = v
	return v
}

// Resolve finds the variable bound to a lemma, searching this scope first
// and then the parent chain.
func (s *Scope) Resolve(lemma string) (*Variable, bool) {
	if v, ok := s.variables[lemma]; ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.Resolve(lemma)
	}
	return nil, false
}

// Assign stores a value into the nearest scope that owns the lemma, or
// creates the variable in this scope when no scope owns it.
func (s *Scope) Assign(lemma string, value Value) {
	if v, ok := s.Resolve(lemma); ok {
		v.Set = true
		v.Value = value
		return
	}
	v := s.Declare(lemma)
	v.Set = true
	v.Value = value
}

// Parent returns the parent scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}
