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

// Package clvmerrors defines the closed error taxonomy every clvm-go
// component raises. Errors carry a Kind from a fixed enum plus an
// optional offending node, matching the (ErrorKind, Option<node>) shape
// a reference implementation must reproduce bit-for-bit.
package clvmerrors

import "fmt"

// Kind is one member of the closed error taxonomy. New kinds are never
// added by callers; the set is closed and fixed at these members.
type Kind int

const (
	BadEncoding Kind = iota
	TooLarge
	Trailing
	CostExceeded
	TooManyPairs
	TooManyAtoms
	EnvStackLimit
	ValStackLimit
	PathIntoAtom
	FirstOfNonCons
	RestOfNonCons
	BadOperandList
	InvalidOperator
	ReservedOperator
	UnknownSoftforkExtension
	SoftforkCostMismatch
	SoftforkFailed
	ArgType
	ArgSize
	DivByZero
	ModByZero
	NegativeExponent
	ShiftTooLarge
	InvalidSubstr
	InvalidCurvePoint
	SignatureVerifyFailed
	ClvmRaise
	InternalError
)

var kindNames = [...]string{
	"BadEncoding", "TooLarge", "Trailing", "CostExceeded", "TooManyPairs",
	"TooManyAtoms", "EnvStackLimit", "ValStackLimit", "PathIntoAtom",
	"FirstOfNonCons", "RestOfNonCons", "BadOperandList", "InvalidOperator",
	"ReservedOperator", "UnknownSoftforkExtension", "SoftforkCostMismatch",
	"SoftforkFailed", "ArgType", "ArgSize", "DivByZero", "ModByZero",
	"NegativeExponent", "ShiftTooLarge", "InvalidSubstr", "InvalidCurvePoint",
	"SignatureVerifyFailed", "ClvmRaise", "InternalError",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// NodeRef is satisfied by arena.Handle without importing the arena
// package here, avoiding an import cycle (arena and every operator
// package need to construct clvmerrors.Error values).
type NodeRef interface {
	// IsZero reports whether the reference is the "no node" sentinel.
	IsZero() bool
}

// Error is the single error type every clvm-go entry point returns. It
// carries the offending node when one is meaningful, and the final
// clamped cost when the failure is cost-related.
type Error struct {
	Kind    Kind
	Node    any // arena.Handle of the offending subtree, or nil
	Cost    uint64
	HasCost bool
	msg     string
	cause   error
}

func (e *Error) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	return e.Kind.String()
}

// Unwrap exposes a wrapped cause (used by SoftforkFailed to preserve
// the inner sub-run's error as its payload).
func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match against a bare Kind sentinel created with New.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WithNode attaches the offending node to an error, returning e for
// chaining.
func (e *Error) WithNode(node any) *Error {
	e.Node = node
	return e
}

// WithCost attaches the clamped cost at which a CostExceeded error was
// raised.
func (e *Error) WithCost(cost uint64) *Error {
	e.Cost = cost
	e.HasCost = true
	return e
}

// Wrap builds a SoftforkFailed error preserving inner as its cause, so
// the inner ErrorKind is recoverable via errors.As/Unwrap.
func Wrap(inner error) *Error {
	return &Error{Kind: SoftforkFailed, msg: inner.Error(), cause: inner}
}

// sentinel-style convenience constructors used throughout ops/ and eval/.

func NewArgType(op string, want string) *Error {
	return New(ArgType, "%s: %s required", op, want)
}

func NewArgSize(op string, want string) *Error {
	return New(ArgSize, "%s: %s", op, want)
}

func NewCostExceeded(clamped uint64) *Error {
	return New(CostExceeded, "cost exceeded max_cost").WithCost(clamped)
}
