package vm

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zurustar/latin/pkg/compiler/lexer"
	"github.com/zurustar/latin/pkg/compiler/parser"
	"github.com/zurustar/latin/pkg/declension"
	"github.com/zurustar/latin/pkg/numerus"
)

// DiagnosticRenderer renders a runtime error for the diagnostic stream.
// The locale package provides the bilingual implementation; a nil
// renderer falls back to the error's own English text.
type DiagnosticRenderer interface {
	RenderRuntime(err *RuntimeError) string
}

// State reports what the engine is doing.
type State int

const (
	StateReady State = iota
	StateRunning
	StateAwaitingInput
	StateHaltedOK
	StateHaltedError
)

var stateNames = map[State]string{
	StateReady:         "ready",
	StateRunning:       "running",
	StateAwaitingInput: "awaiting-input",
	StateHaltedOK:      "halted",
	StateHaltedError:   "failed",
}

// String returns the state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ExitOutcome is the result of a complete run.
type ExitOutcome struct {
	Success bool
	Err     *RuntimeError // nil on success
}

// Config carries the streams and collaborators of one engine.
type Config struct {
	Input    io.Reader          // LEGO/LEGE source; defaults to os.Stdin
	Output   io.Writer          // SCRIBE target; defaults to os.Stdout
	Diag     io.Writer          // AVDI, NOTA and error reports; defaults to os.Stderr
	Renderer DiagnosticRenderer // optional bilingual error rendering
	Logger   *slog.Logger       // defaults to slog.Default()
	Global   *Scope             // optional preexisting global scope (REPL reuse)
}

// stepKind tags the outcome of executing one statement.
type stepKind int

const (
	stepContinue stepKind = iota
	stepJump
	stepThrow
	stepReturn
	stepHalt
)

// step is the control-flow outcome of one statement. Exceptions and
// returns travel through this union, never through panic.
type step struct {
	kind      stepKind
	target    int       // stepJump: next pc
	name      string    // stepThrow: exception lemma
	value     Value     // stepThrow payload / stepReturn value
	throwKind ErrorType // stepThrow: kind reported when uncaught, empty for IACE
}

var (
	sContinue = step{kind: stepContinue}
	sHalt     = step{kind: stepHalt}
)

func jumpTo(pc int) step {
	return step{kind: stepJump, target: pc}
}

// VM executes one resolved program. It is strictly single-threaded;
// nothing here is safe for concurrent use.
type VM struct {
	program  *parser.Program
	pc       int
	global   *Scope
	frames   []*CallFrame
	handlers []*HandlerEntry
	funcs    map[string]*Function

	// FINIS index whose execution ends the program because a caught
	// exception's handler body ran to completion, -1 otherwise.
	handlerEnd int

	state    State
	input    *bufio.Scanner
	output   io.Writer
	diag     io.Writer
	renderer DiagnosticRenderer
	logger   *slog.Logger
}

// New creates an engine over a resolved program.
func New(program *parser.Program, cfg Config) *VM {
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Diag == nil {
		cfg.Diag = os.Stderr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Global == nil {
		cfg.Global = NewScope(nil)
	}
	return &VM{
		program:    program,
		global:     cfg.Global,
		funcs:      make(map[string]*Function),
		handlerEnd: -1,
		state:      StateReady,
		input:      bufio.NewScanner(cfg.Input),
		output:     cfg.Output,
		diag:       cfg.Diag,
		renderer:   cfg.Renderer,
		logger:     cfg.Logger,
	}
}

// State reports the engine state.
func (vm *VM) State() State {
	return vm.state
}

// Global returns the global scope, for prompt sessions that carry
// bindings across programs.
func (vm *VM) Global() *Scope {
	return vm.global
}

// Run executes the program from the first statement to completion. On
// failure the error is written to the diagnostic stream and returned in
// the outcome; execution never continues past a runtime error.
func (vm *VM) Run() ExitOutcome {
	vm.state = StateRunning
	vm.logger.Debug("program started", "statements", len(vm.program.Statements))

	for vm.pc < len(vm.program.Statements) {
		st := vm.program.Statements[vm.pc]
		out, rerr := vm.execute(st)
		if rerr != nil {
			if rerr.Line == 0 {
				rerr.Line = st.Line
			}
			return vm.fail(rerr)
		}

		switch out.kind {
		case stepContinue:
			vm.pc++
		case stepJump:
			vm.pc = out.target
		case stepHalt:
			return vm.succeed()
		case stepReturn:
			if rerr := vm.doReturn(out.value); rerr != nil {
				rerr.Line = st.Line
				return vm.fail(rerr)
			}
		case stepThrow:
			if !vm.dispatchThrow(out.name, out.value) {
				rerr := NewUncaughtExceptionError(out.name, out.value)
				if out.throwKind == ErrorDivisionByZero {
					rerr = NewDivisionByZeroError(out.value)
				}
				rerr.Line = st.Line
				return vm.fail(rerr)
			}
		}
	}
	return vm.succeed()
}

func (vm *VM) succeed() ExitOutcome {
	vm.state = StateHaltedOK
	vm.logger.Debug("program halted", "state", vm.state.String())
	return ExitOutcome{Success: true}
}

func (vm *VM) fail(rerr *RuntimeError) ExitOutcome {
	vm.state = StateHaltedError
	text := rerr.Error()
	if vm.renderer != nil {
		text = vm.renderer.RenderRuntime(rerr)
	}
	fmt.Fprintln(vm.diag, text)
	vm.logger.Debug("program failed", "type", string(rerr.Type), "line", rerr.Line)
	return ExitOutcome{Success: false, Err: rerr}
}

// currentScope is the innermost call frame's scope, or the global scope
// outside any call.
func (vm *VM) currentScope() *Scope {
	if n := len(vm.frames); n > 0 {
		return vm.frames[n-1].Scope
	}
	return vm.global
}

// execute runs one statement and reports where control goes next.
func (vm *VM) execute(st *parser.Statement) (step, *RuntimeError) {
	switch st.Kind {
	case parser.StmtDeclare:
		vm.currentScope().Declare(st.Target.Lemma)
		return sContinue, nil

	case parser.StmtAssign:
		return vm.execAssign(st)

	case parser.StmtPrint:
		v, rerr := vm.evalOperand(st.Operand, declension.Accusative)
		if rerr != nil {
			return sHalt, rerr
		}
		fmt.Fprintln(vm.output, v.Render())
		return sContinue, nil

	case parser.StmtDebugLog:
		v, rerr := vm.evalOperand(st.Operand, declension.Accusative)
		if rerr != nil {
			return sHalt, rerr
		}
		fmt.Fprintf(vm.diag, "[DEBUG] %s\n", v.Render())
		return sContinue, nil

	case parser.StmtLog:
		v, rerr := vm.evalOperand(st.Operand, declension.Accusative)
		if rerr != nil {
			return sHalt, rerr
		}
		fmt.Fprintf(vm.diag, "[LOG] %s\n", v.Render())
		return sContinue, nil

	case parser.StmtInput:
		return vm.execInput(st)

	case parser.StmtIf:
		ok, rerr := vm.evalCondition(st)
		if rerr != nil {
			return sHalt, rerr
		}
		if ok {
			return sContinue, nil
		}
		return jumpTo(st.FalseTarget), nil

	case parser.StmtWhile:
		ok, rerr := vm.evalCondition(st)
		if rerr != nil {
			return sHalt, rerr
		}
		if ok {
			return sContinue, nil
		}
		return jumpTo(st.ExitTarget), nil

	case parser.StmtElse:
		// Reached only by falling out of the true branch.
		return jumpTo(st.SkipTarget), nil

	case parser.StmtEndBlock:
		return vm.execEndBlock(st)

	case parser.StmtFunctionDef:
		if !st.Name.Cases.Has(declension.Nominative) {
			return sHalt, NewCaseMismatchError(st.Name.Literal, declension.Nominative.String(), st.Name.Cases.String())
		}
		vm.funcs[st.Name.Lemma] = &Function{
			Name:      st.Name.Lemma,
			Params:    st.Params,
			BodyStart: st.BodyStart,
			BodyEnd:   st.BodyEnd,
		}
		return jumpTo(st.BodyEnd + 1), nil

	case parser.StmtReturn:
		if len(vm.frames) == 0 {
			return sHalt, NewSyntaxError("REDDO outside any function")
		}
		v, rerr := vm.evalOperand(st.Operand, declension.Accusative)
		if rerr != nil {
			return sHalt, rerr
		}
		return step{kind: stepReturn, value: v}, nil

	case parser.StmtThrow:
		if !st.Name.Cases.Has(declension.Vocative) {
			return sHalt, NewCaseMismatchError(st.Name.Literal, declension.Vocative.String(), st.Name.Cases.String())
		}
		payload := NewStr("")
		if st.HasPayload {
			payload = NewStr(st.Payload.Literal)
		}
		return step{kind: stepThrow, name: st.Name.Lemma, value: payload}, nil

	case parser.StmtCatch:
		if !st.Name.Cases.Has(declension.Vocative) {
			return sHalt, NewCaseMismatchError(st.Name.Literal, declension.Vocative.String(), st.Name.Cases.String())
		}
		vm.handlers = append(vm.handlers, &HandlerEntry{
			Lemma:     st.Name.Lemma,
			BodyStart: st.BodyStart,
			BodyEnd:   st.BodyEnd,
			Armed:     true,
		})
		return jumpTo(st.BodyEnd + 1), nil
	}

	return sHalt, NewSyntaxError("statement kind %s cannot be executed", st.Kind)
}

// execAssign evaluates the right-hand side and stores it under the
// left-hand variable. A VOCA right-hand side transfers control into the
// function body instead; the return lands the value later.
func (vm *VM) execAssign(st *parser.Statement) (step, *RuntimeError) {
	if !st.Target.Cases.Has(declension.Nominative) {
		return sHalt, NewCaseMismatchError(st.Target.Literal, declension.Nominative.String(), st.Target.Cases.String())
	}

	switch st.Expr.Kind {
	case parser.ExprOperand:
		v, rerr := vm.evalOperand(st.Expr.Operand, declension.Nominative)
		if rerr != nil {
			return sHalt, rerr
		}
		vm.currentScope().Assign(st.Target.Lemma, v)
		return sContinue, nil

	case parser.ExprOperation:
		v, out, rerr := vm.evalOperation(st.Expr.Op, st.Expr.Args)
		if rerr != nil {
			return sHalt, rerr
		}
		if out != nil {
			return *out, nil
		}
		vm.currentScope().Assign(st.Target.Lemma, v)
		return sContinue, nil

	case parser.ExprCall:
		return vm.execCall(st)
	}
	return sHalt, NewSyntaxError("invalid assignment expression")
}

// execCall pushes a call frame and jumps into the function body.
func (vm *VM) execCall(st *parser.Statement) (step, *RuntimeError) {
	callee := st.Expr.Callee
	if !callee.Cases.Has(declension.Accusative) {
		return sHalt, NewCaseMismatchError(callee.Literal, declension.Accusative.String(), callee.Cases.String())
	}
	fn, ok := vm.funcs[callee.Lemma]
	if !ok {
		return sHalt, NewSyntaxError("function %s is not defined", callee.Lemma)
	}
	if len(st.Expr.Args) != len(fn.Params) {
		return sHalt, NewSyntaxError("function %s takes %d arguments, got %d", fn.Name, len(fn.Params), len(st.Expr.Args))
	}

	args := make([]Value, 0, len(st.Expr.Args))
	for _, tok := range st.Expr.Args {
		v, rerr := vm.evalOperand(tok, declension.Accusative)
		if rerr != nil {
			return sHalt, rerr
		}
		args = append(args, v)
	}

	frame := &CallFrame{
		Function: fn.Name,
		ReturnPC: vm.pc,
		Target:   st.Target.Lemma,
		Scope:    NewScope(vm.global),
	}
	for i, param := range fn.Params {
		pv := frame.Scope.Declare(param)
		pv.Set = true
		pv.Value = args[i]
	}
	vm.frames = append(vm.frames, frame)
	return jumpTo(fn.BodyStart), nil
}

// doReturn pops the innermost frame, stores the value under the caller's
// target variable and resumes after the calling assignment.
func (vm *VM) doReturn(v Value) *RuntimeError {
	n := len(vm.frames)
	if n == 0 {
		return NewSyntaxError("REDDO outside any function")
	}
	frame := vm.frames[n-1]
	vm.frames = vm.frames[:n-1]
	vm.currentScope().Assign(frame.Target, v)
	vm.pc = frame.ReturnPC + 1
	return nil
}

// execEndBlock decides what a FINIS closes: a completed handler body
// halts the program, a loop FINIS jumps back to its DUM, a function's
// FINIS is an implicit REDDO NIHIL, and anything else falls through.
func (vm *VM) execEndBlock(st *parser.Statement) (step, *RuntimeError) {
	if vm.pc == vm.handlerEnd {
		return sHalt, nil
	}
	if st.LoopHeader >= 0 {
		return jumpTo(st.LoopHeader), nil
	}
	if n := len(vm.frames); n > 0 {
		fn := vm.funcs[vm.frames[n-1].Function]
		if fn != nil && fn.BodyEnd == vm.pc {
			return step{kind: stepReturn, value: NewInt(0)}, nil
		}
	}
	return sContinue, nil
}

// execInput reads one line, classifies it as numeral or string, and
// stores it under the operand variable.
func (vm *VM) execInput(st *parser.Statement) (step, *RuntimeError) {
	if !st.Operand.Cases.Has(declension.Accusative) {
		return sHalt, NewCaseMismatchError(st.Operand.Literal, declension.Accusative.String(), st.Operand.Cases.String())
	}

	vm.state = StateAwaitingInput
	ok := vm.input.Scan()
	vm.state = StateRunning
	if !ok {
		return sHalt, NewSyntaxError("no input available for %s", st.Operand.Literal)
	}
	line := strings.TrimRight(vm.input.Text(), "\r")

	var v Value
	if n, err := numerus.Decode(line); err == nil {
		v = NewInt(n)
	} else {
		// One layer of quotes may wrap a string reply.
		if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
			line = line[1 : len(line)-1]
		}
		v = NewStr(line)
	}
	vm.currentScope().Assign(st.Operand.Lemma, v)
	return sContinue, nil
}

// evalCondition evaluates an SI or DUM condition. Both sides stand in the
// nominative; MAIVS and MINOR compare numbers only.
func (vm *VM) evalCondition(st *parser.Statement) (bool, *RuntimeError) {
	left, rerr := vm.evalOperand(st.Cond.Left, declension.Nominative)
	if rerr != nil {
		return false, rerr
	}
	right, rerr := vm.evalOperand(st.Cond.Right, declension.Nominative)
	if rerr != nil {
		return false, rerr
	}

	switch st.Cond.Op {
	case lexer.KwAequat:
		return left.Equal(right), nil
	case lexer.KwMaius, lexer.KwMinor:
		if left.Kind != KindInt || right.Kind != KindInt {
			return false, NewSyntaxError("%s compares numbers only", st.Cond.Op)
		}
		if st.Cond.Op == lexer.KwMaius {
			return left.Int > right.Int, nil
		}
		return left.Int < right.Int, nil
	}
	return false, NewSyntaxError("unknown comparison %s", st.Cond.Op)
}

// evalOperand produces the value of a single operand token. Variable
// operands must be able to stand in the required case; literals carry no
// case and are exempt.
func (vm *VM) evalOperand(tok lexer.Token, required declension.Case) (Value, *RuntimeError) {
	switch tok.Type {
	case lexer.TOKEN_NUMERAL:
		return NewInt(tok.Value), nil
	case lexer.TOKEN_NIHIL:
		return NewInt(0), nil
	case lexer.TOKEN_STRING:
		return NewStr(tok.Literal), nil
	case lexer.TOKEN_VARIABLE:
		if !tok.Cases.Has(required) {
			return Value{}, NewCaseMismatchError(tok.Literal, required.String(), tok.Cases.String())
		}
		v, ok := vm.currentScope().Resolve(tok.Lemma)
		if !ok {
			return Value{}, NewUndeclaredVariableError(tok.Lemma)
		}
		if !v.Set {
			return Value{}, NewUninitializedVariableError(tok.Lemma)
		}
		return v.Value, nil
	}
	return Value{}, NewSyntaxError("%s cannot stand as an operand", tok.Literal)
}

// operand case contracts of the two-operand operations. The first operand
// names the thing acted on and stands in the accusative throughout; the
// second operand's case carries the operation's own grammar.
var operationCases = map[string][2]declension.Case{
	lexer.KwAdde:       {declension.Accusative, declension.Dative},
	lexer.KwDeme:       {declension.Accusative, declension.Ablative},
	lexer.KwMultiplica: {declension.Accusative, declension.Accusative},
	lexer.KwDuce:       {declension.Accusative, declension.Accusative},
	lexer.KwIunge:      {declension.Accusative, declension.Accusative},
	lexer.KwIncipit:    {declension.Accusative, declension.Accusative},
	lexer.KwFinitur:    {declension.Accusative, declension.Accusative},
	lexer.KwContinet:   {declension.Accusative, declension.Accusative},
	lexer.KwIndicede:   {declension.Accusative, declension.Accusative},
}

// evalOperation computes a two-operand operation. Division by zero does
// not fail directly; it throws the catchable ERROR exception, returned as
// a non-nil step.
func (vm *VM) evalOperation(op string, args []lexer.Token) (Value, *step, *RuntimeError) {
	cases, ok := operationCases[op]
	if !ok {
		return Value{}, nil, NewSyntaxError("unknown operation %s", op)
	}
	a, rerr := vm.evalOperand(args[0], cases[0])
	if rerr != nil {
		return Value{}, nil, rerr
	}
	b, rerr := vm.evalOperand(args[1], cases[1])
	if rerr != nil {
		return Value{}, nil, rerr
	}

	switch op {
	case lexer.KwAdde, lexer.KwDeme, lexer.KwMultiplica, lexer.KwDuce:
		if a.Kind != KindInt || b.Kind != KindInt {
			return Value{}, nil, NewSyntaxError("%s operates on numbers only", op)
		}
		switch op {
		case lexer.KwAdde:
			return NewInt(a.Int + b.Int), nil, nil
		case lexer.KwDeme:
			return NewInt(a.Int - b.Int), nil, nil
		case lexer.KwMultiplica:
			return NewInt(a.Int * b.Int), nil, nil
		default:
			if b.Int == 0 {
				out := step{kind: stepThrow, name: "ERROR", value: NewStr("Divisio per nihil"), throwKind: ErrorDivisionByZero}
				return Value{}, &out, nil
			}
			// Quotients floor toward negative infinity.
			q := a.Int / b.Int
			if a.Int%b.Int != 0 && (a.Int < 0) != (b.Int < 0) {
				q--
			}
			return NewInt(q), nil, nil
		}

	case lexer.KwIunge:
		return NewStr(a.Render() + b.Render()), nil, nil

	case lexer.KwIncipit, lexer.KwFinitur, lexer.KwContinet, lexer.KwIndicede:
		if a.Kind != KindStr || b.Kind != KindStr {
			return Value{}, nil, NewSyntaxError("%s operates on strings only", op)
		}
		switch op {
		case lexer.KwIncipit:
			return boolValue(strings.HasPrefix(a.Str, b.Str)), nil, nil
		case lexer.KwFinitur:
			return boolValue(strings.HasSuffix(a.Str, b.Str)), nil, nil
		case lexer.KwContinet:
			return boolValue(strings.Contains(a.Str, b.Str)), nil, nil
		default:
			return NewInt(strings.Index(a.Str, b.Str) + 1), nil, nil
		}
	}
	return Value{}, nil, NewSyntaxError("unknown operation %s", op)
}

// boolValue maps a truth value onto the numbers the language understands.
func boolValue(b bool) Value {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

// dispatchThrow finds the innermost armed handler for the exception name,
// disarms it, binds the payload under the handler's lemma and moves the
// program counter to the handler body. It reports false when no armed
// handler matches.
func (vm *VM) dispatchThrow(name string, payload Value) bool {
	for i := len(vm.handlers) - 1; i >= 0; i-- {
		h := vm.handlers[i]
		if !h.Armed || h.Lemma != name {
			continue
		}
		h.Armed = false
		bound := vm.currentScope().Declare(name)
		bound.Set = true
		bound.Value = payload
		vm.handlerEnd = h.BodyEnd
		vm.pc = h.BodyStart
		vm.logger.Debug("exception caught", "name", name)
		return true
	}
	return false
}
