// Copyright 2026 The clvm-go Authors
// This file is part of clvm-go.
//
// clvm-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// clvm-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with clvm-go. If not, see <http://www.gnu.org/licenses/>.

// Package eval implements the reduction engine: an explicit operation
// stack and value stack realizing call-by-value reduction over the
// arena's node graph, spec.md §4.7. Like every other tree-walking
// routine in this module, the driver loop never recurses on the host
// stack (spec.md §9): a program whose call tree is a million deep spine
// runs in a flat loop over op and value slices.
package eval

import (
	"errors"
	"math/big"

	"github.com/chia-network/clvm-go/arena"
	"github.com/chia-network/clvm-go/bigatom"
	"github.com/chia-network/clvm-go/clvmerrors"
	"github.com/chia-network/clvm-go/costs"
	"github.com/chia-network/clvm-go/ops"
	"github.com/chia-network/clvm-go/params"
	"github.com/chia-network/clvm-go/serialize"
)

// Resource limits, spec.md §4.7 ("two hard limits"). These bound the
// evaluator independent of cost: a program that is cheap per-operation
// but pathologically deep or wide is still rejected.
const (
	DefaultValueStackLimit = 1 << 16
	DefaultPairLimit       = 1 << 24
	DefaultAtomLimit       = 1 << 24
)

type instrKind uint8

const (
	instrEval instrKind = iota
	instrApply
	instrResumeOp // op position was itself a pair; its value is now ready
)

type instr struct {
	kind instrKind

	// instrEval
	node arena.Handle
	env  arena.Handle

	// instrApply
	opcode arena.Handle
	argc   int

	// instrResumeOp
	rest arena.Handle
}

// Evaluator drives one run_program call. It owns no resources beyond
// the Arena and Meter it is given; callers construct a fresh Evaluator
// (via New) per run, matching spec.md §5's "no shared mutable state
// persists across calls" contract.
type Evaluator struct {
	arena *arena.Arena
	meter *costs.Meter
	flags params.Flags

	valueStack []arena.Handle
	opStack    []instr

	valueStackLimit int
	pairLimit       int
	atomLimit       int

	dispatchCount  uint64
	unknownOpCount uint64
}

// DispatchCount returns the number of operator applications performed
// so far, including unrecognized soft-fork-window opcodes but not "a"
// or "softfork", which the evaluator handles itself. Exposed for
// callers that want to log dispatch activity; the evaluator itself
// never logs.
func (ev *Evaluator) DispatchCount() uint64 { return ev.dispatchCount }

// UnknownOpCount returns how many soft-fork-window opcodes resolved to
// the unknown-operator no-op fallback during this run.
func (ev *Evaluator) UnknownOpCount() uint64 { return ev.unknownOpCount }

// New constructs an Evaluator over an already-populated Arena.
func New(a *arena.Arena, maxCost uint64, flags params.Flags) *Evaluator {
	return &Evaluator{
		arena:           a,
		meter:           costs.New(maxCost),
		flags:           flags,
		valueStackLimit: DefaultValueStackLimit,
		pairLimit:       DefaultPairLimit,
		atomLimit:       DefaultAtomLimit,
	}
}

// Cost returns the cost accumulated so far.
func (ev *Evaluator) Cost() uint64 { return ev.meter.Cost() }

func (ev *Evaluator) pushOp(i instr) { ev.opStack = append(ev.opStack, i) }

func (ev *Evaluator) popOp() (instr, bool) {
	n := len(ev.opStack)
	if n == 0 {
		return instr{}, false
	}
	top := ev.opStack[n-1]
	ev.opStack = ev.opStack[:n-1]
	return top, true
}

func (ev *Evaluator) pushValue(h arena.Handle) error {
	if len(ev.valueStack) >= ev.valueStackLimit {
		return clvmerrors.New(clvmerrors.ValStackLimit, "value stack limit exceeded")
	}
	ev.valueStack = append(ev.valueStack, h)
	return nil
}

func (ev *Evaluator) popValue() arena.Handle {
	n := len(ev.valueStack)
	top := ev.valueStack[n-1]
	ev.valueStack = ev.valueStack[:n-1]
	return top
}

func (ev *Evaluator) popValues(n int) []arena.Handle {
	start := len(ev.valueStack) - n
	out := make([]arena.Handle, n)
	copy(out, ev.valueStack[start:])
	ev.valueStack = ev.valueStack[:start]
	return out
}

func (ev *Evaluator) charge(delta uint64) error {
	return ev.meter.Charge(delta)
}

// checkAllocationLimits enforces spec.md §4.7's two allocation
// ceilings after every operator call, since operator handlers allocate
// directly through the Arena (cons, concat, sha256, ...) rather than
// through a limit-aware wrapper. Arena.Len counts atoms and pairs
// together, so the same total is compared against pairLimit first and
// then atomLimit; node kind is not distinguished. With the default
// limits (which are equal) an overrun is always reported as
// TooManyPairs.
func (ev *Evaluator) checkAllocationLimits() error {
	n := ev.arena.Len()
	if n > ev.pairLimit {
		return clvmerrors.New(clvmerrors.TooManyPairs, "too many pairs")
	}
	if n > ev.atomLimit {
		return clvmerrors.New(clvmerrors.TooManyAtoms, "too many atoms")
	}
	return nil
}

// Run executes the evaluator starting from Eval(program, env) until the
// operation stack empties, returning the single remaining value.
func (ev *Evaluator) Run(program, env arena.Handle) (arena.Handle, error) {
	ev.pushOp(instr{kind: instrEval, node: program, env: env})
	for {
		op, ok := ev.popOp()
		if !ok {
			break
		}
		if err := ev.step(op); err != nil {
			return 0, err
		}
	}
	if len(ev.valueStack) != 1 {
		return 0, clvmerrors.New(clvmerrors.InternalError, "evaluator terminated with %d values on the stack, want 1", len(ev.valueStack))
	}
	return ev.valueStack[0], nil
}

func (ev *Evaluator) step(i instr) error {
	switch i.kind {
	case instrEval:
		return ev.doEval(i.node, i.env)
	case instrApply:
		return ev.doApply(i.opcode, i.argc)
	case instrResumeOp:
		opAtom := ev.popValue()
		return ev.dispatchOperator(opAtom, i.rest, i.env)
	default:
		return clvmerrors.New(clvmerrors.InternalError, "unknown instruction kind %d", i.kind)
	}
}

// doEval implements the Eval(node, env) rule, spec.md §4.7.
func (ev *Evaluator) doEval(node, env arena.Handle) error {
	if ev.arena.IsAtom(node) {
		return ev.evalPath(node, env)
	}
	opNode, rest := ev.arena.Pair(node)
	if ev.arena.IsPair(opNode) {
		// "If op is itself a pair, evaluate it first (it must reduce
		// to an atom opcode) then re-schedule the call," spec.md §4.7.
		ev.pushOp(instr{kind: instrResumeOp, rest: rest, env: env})
		ev.pushOp(instr{kind: instrEval, node: opNode, env: env})
		return nil
	}
	return ev.dispatchOperator(opNode, rest, env)
}

// evalPath traverses env along the bit pattern of the path-integer atom
// node, spec.md §4.7/Glossary. Path 0 (the empty atom) has no
// terminator bit and is the canonical nil/false value on its own
// terms, so it resolves to nil rather than descending into env at all.
func (ev *Evaluator) evalPath(pathAtom, env arena.Handle) error {
	b := bigatom.ToInt(ev.arena.Atom(pathAtom))
	if b.Sign() < 0 {
		return clvmerrors.New(clvmerrors.PathIntoAtom, "path integer must be non-negative")
	}
	if b.Sign() == 0 {
		if err := ev.charge(costs.PathLookupBaseCost); err != nil {
			return err
		}
		return ev.pushValue(arena.NilHandle())
	}
	cur := env
	legs := 0
	one := big.NewInt(1)
	n := new(big.Int).Set(b)
	for n.Cmp(one) > 0 {
		if ev.arena.IsAtom(cur) {
			return clvmerrors.New(clvmerrors.PathIntoAtom, "path descends into an atom").WithNode(cur)
		}
		first, rest := ev.arena.Pair(cur)
		if n.Bit(0) == 1 {
			cur = rest
		} else {
			cur = first
		}
		n.Rsh(n, 1)
		legs++
	}
	zeroBytes := 0
	for _, by := range ev.arena.Atom(pathAtom) {
		if by == 0 {
			zeroBytes++
		} else {
			break
		}
	}
	delta := uint64(costs.PathLookupBaseCost) + uint64(legs)*costs.PathLookupCostPerLeg + uint64(zeroBytes)*costs.PathLookupCostPerZeroByte
	if err := ev.charge(delta); err != nil {
		return err
	}
	return ev.pushValue(cur)
}

// dispatchOperator implements the "otherwise" branch of Eval: op is an
// atom naming an opcode. "q" is special-cased here since it must not
// evaluate its operand at all; every other opcode, including "a", first
// enumerates and evaluates its argument list the same way and only
// diverges once those values reach Apply, spec.md §4.7.
func (ev *Evaluator) dispatchOperator(opNode, rest, env arena.Handle) error {
	if ev.arena.IsPair(opNode) {
		return clvmerrors.New(clvmerrors.InvalidOperator, "operator position did not reduce to an atom").WithNode(opNode)
	}
	opBytes := ev.arena.Atom(opNode)
	if len(opBytes) == 1 && opBytes[0] == byte(params.OpQuote) {
		if err := ev.charge(costs.QuoteCost); err != nil {
			return err
		}
		return ev.pushValue(rest)
	}

	args, err := listToSlice(ev.arena, rest)
	if err != nil {
		return err
	}
	// Push the Apply marker first (it runs last, once every argument's
	// Eval has completed) then the arguments' Eval instructions in
	// reverse order, so the leftmost argument ends up on top of the
	// stack and therefore evaluates first (left-to-right order).
	ev.pushOp(instr{kind: instrApply, opcode: opNode, argc: len(args)})
	for i := len(args) - 1; i >= 0; i-- {
		ev.pushOp(instr{kind: instrEval, node: args[i], env: env})
	}
	return nil
}

// doApplyTail implements the "a" (apply) form once its two arguments —
// a program value and a new environment value — are already evaluated
// against the *current* env. Unlike every other operator, it does not
// compute a result directly: it schedules a fresh Eval of the program
// value against the new environment value and returns, so the next
// iteration of Run's loop continues in the same op-stack frame instead
// of nesting one. This is what makes "a" a genuine tail call, spec.md
// §4.4/§4.7 — a looping CLVM program built from "a" runs in flat space
// regardless of how many times it recurses.
func (ev *Evaluator) doApplyTail(args []arena.Handle) error {
	if len(args) != 2 {
		return clvmerrors.New(clvmerrors.ArgType, "a: exactly 2 arguments required, got %d", len(args))
	}
	if err := ev.charge(costs.ApplyCost); err != nil {
		return err
	}
	prog, newEnv := args[0], args[1]
	ev.pushOp(instr{kind: instrEval, node: prog, env: newEnv})
	return nil
}

// doApply implements the Apply(argc, op) rule: pop argc values (in
// program order), look up the operator, charge its base cost, invoke
// it, charge the returned delta, and push the result, spec.md §4.7.
func (ev *Evaluator) doApply(opcode arena.Handle, argc int) error {
	args := ev.popValues(argc)
	opBytes := ev.arena.Atom(opcode)
	if len(opBytes) != 1 {
		return clvmerrors.New(clvmerrors.InvalidOperator, "multi-byte operator atom").WithNode(opcode)
	}
	opByte := opBytes[0]

	switch params.Opcode(opByte) {
	case params.OpApply:
		return ev.doApplyTail(args)
	case params.OpSoftfork:
		return ev.doSoftfork(args)
	}

	ev.dispatchCount++
	op, unknown, err := ops.Lookup(opByte, ev.flags)
	if err != nil {
		return err
	}
	if unknown {
		// Unrecognized opcode in the soft-fork window: nil at a fixed
		// cost, spec.md §4.7.
		ev.unknownOpCount++
		if err := ev.charge(costs.UnknownOpcodeCost); err != nil {
			return err
		}
		return ev.pushValue(arena.NilHandle())
	}
	if err := ev.charge(op.BaseCost); err != nil {
		return err
	}
	delta, result, err := op.Run(ev.arena, args, ev.flags)
	if err != nil {
		return err
	}
	if err := ev.charge(delta); err != nil {
		return err
	}
	if err := ev.checkAllocationLimits(); err != nil {
		return err
	}
	return ev.pushValue(result)
}

// listToSlice walks a nil-terminated cons list into a slice of its
// elements, failing BadOperandList if it is not properly terminated,
// spec.md §4.7.
func listToSlice(a *arena.Arena, list arena.Handle) ([]arena.Handle, error) {
	var out []arena.Handle
	cur := list
	for {
		if a.IsNil(cur) {
			return out, nil
		}
		if a.IsAtom(cur) {
			return nil, clvmerrors.New(clvmerrors.BadOperandList, "argument list is not nil-terminated").WithNode(cur)
		}
		first, rest := a.Pair(cur)
		out = append(out, first)
		cur = rest
	}
}

// RunProgram parses programBytes and envBytes, runs the evaluator to
// completion, and returns the canonical serialization of the result,
// spec.md §6.
func RunProgram(programBytes, envBytes []byte, maxCost uint64, flags params.Flags) (cost uint64, resultBytes []byte, err error) {
	a := arena.New()
	program, err := serialize.ParseExact(a, programBytes)
	if err != nil {
		return 0, nil, err
	}
	env, err := serialize.ParseExact(a, envBytes)
	if err != nil {
		return 0, nil, err
	}
	ev := New(a, maxCost, flags)
	result, err := ev.Run(program, env)
	if err != nil {
		return reportedCost(ev, err), nil, err
	}
	return ev.Cost(), serialize.Serialize(a, result), nil
}

// reportedCost returns the cost to surface alongside a failed run: the
// clamped max_cost+1 value a CostExceeded error carries (spec.md §8's
// "cost determinism under failure" property), or the meter's raw
// accumulated cost for every other error kind.
func reportedCost(ev *Evaluator, err error) uint64 {
	var ce *clvmerrors.Error
	if errors.As(err, &ce) && ce.HasCost {
		return ce.Cost
	}
	return ev.Cost()
}

// Result is the zero-copy output of RunProgramLazy: a handle into the
// Arena the call constructed, which the caller may inspect or
// re-serialize on demand (spec.md §6/§9 "lazy result view"). Holding a
// Result keeps the whole Arena alive; a caller that only needs the
// bytes should call RunProgram instead.
type Result struct {
	Arena  *arena.Arena
	Handle arena.Handle
}

// Bytes serializes the lazy result on demand.
func (r Result) Bytes() []byte { return serialize.Serialize(r.Arena, r.Handle) }

// RunProgramLazy is RunProgram but returns a Result instead of eagerly
// serializing it, spec.md §6/§9.
func RunProgramLazy(programBytes, envBytes []byte, maxCost uint64, flags params.Flags) (cost uint64, result Result, err error) {
	a := arena.New()
	program, err := serialize.ParseExact(a, programBytes)
	if err != nil {
		return 0, Result{}, err
	}
	env, err := serialize.ParseExact(a, envBytes)
	if err != nil {
		return 0, Result{}, err
	}
	ev := New(a, maxCost, flags)
	h, err := ev.Run(program, env)
	if err != nil {
		return reportedCost(ev, err), Result{}, err
	}
	return ev.Cost(), Result{Arena: a, Handle: h}, nil
}
