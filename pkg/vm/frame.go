package vm

// Function is a callable registered by FAC when its definition line
// executes. Calling a name before its FAC line has run is an error.
type Function struct {
	Name      string
	Params    []string // formal-parameter lemmas in order
	BodyStart int
	BodyEnd   int // index of the matching FINIS
}

// CallFrame records one active VOCA. Target is the lemma of the
// assignment's left-hand variable; the returned value lands there in the
// caller's scope.
type CallFrame struct {
	Function string
	ReturnPC int // index of the calling assignment
	Target   string
	Scope    *Scope
}

// HandlerEntry is one armed CAPE. A handler fires at most once: IACE
// disarms it before control enters the body, so a throw from inside the
// body can never re-enter it.
type HandlerEntry struct {
	Lemma     string
	BodyStart int
	BodyEnd   int // index of the matching FINIS
	Armed     bool
}
