// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operator defines the polymorphic linear-operator contract the
// solvers in package krylov are built against: shape, an Apply method,
// and the optional adjoint/transpose/division-solve capabilities a
// caller's concrete operator may additionally provide.
//
// A solver never assumes symmetry or Hermitian-ness unless its method
// requires it; when it does, the caller's Hermitian/Symmetric flag is
// trusted, and a caller that lies about it gets undefined numerical
// behaviour, never memory unsafety — Apply always writes exactly Rows()
// entries into its destination slice and nothing else.
package operator

import "github.com/pkg/errors"

// ErrNotImplemented is returned by the optional-capability methods (see
// AdjointApplier, TransposeApplier, DivisionSolver) when a caller invokes
// a capability an Operator does not actually provide. Solvers that need a
// capability check for it with a type assertion before calling and never
// rely on this error, but operator.Func returns it from its zero-valued
// optional funcs so that hand-rolled Operator implementations have a
// sensible default to embed.
var ErrNotImplemented = errors.New("operator: capability not implemented")

// Operator represents an m×n linear map over scalar type FC with a real
// part/norm type T, exposed solely through matrix-vector application. The
// solver neither owns nor mutates an Operator; its lifetime is the
// caller's responsibility.
type Operator[T, FC any] interface {
	// Rows and Cols report the shape of the operator.
	Rows() int
	Cols() int

	// Symmetric reports whether the operator is symmetric: Aᵀ = A.
	Symmetric() bool
	// Hermitian reports whether the operator is Hermitian: Aᴴ = A. If
	// Hermitian returns true, Rows must equal Cols.
	Hermitian() bool
	// UsesDivision reports that this operator is a preconditioner that
	// should be applied by left-division (see DivisionSolver) rather
	// than by the multiplicative Apply.
	UsesDivision() bool

	// Apply computes y ← A*x. len(x) must equal Cols(), len(y) must
	// equal Rows(). Apply must not retain x or y past the call.
	Apply(y, x []FC) error
}

// AdjointApplier is implemented by an Operator that can additionally
// apply its conjugate transpose. Solvers that need Aᴴ*x type-assert for
// this interface rather than requiring it unconditionally, since several
// methods (e.g. CG-Lanczos on a Hermitian operator) never need it.
type AdjointApplier[T, FC any] interface {
	// ApplyAdjoint computes y ← Aᴴ*x.
	ApplyAdjoint(y, x []FC) error
}

// TransposeApplier is implemented by an Operator that can additionally
// apply its transpose (as opposed to conjugate transpose).
type TransposeApplier[T, FC any] interface {
	// ApplyTranspose computes y ← Aᵀ*x.
	ApplyTranspose(y, x []FC) error
}

// DivisionSolver is implemented by a preconditioner Operator whose
// UsesDivision reports true: it exposes M⁻¹ by solving rather than by
// multiplying.
type DivisionSolver[T, FC any] interface {
	// Solve computes y such that M*y = x, i.e. y ← M⁻¹*x.
	Solve(y, x []FC) error
}

// DeviceOperator is an optional interface an Operator may implement to
// report the residency of the memory its Apply method reads and writes.
// Nothing in this module calls Device: solvers never branch on it and
// never copy vector data host↔device, and their verbose log events do
// not include it.
type DeviceOperator interface {
	// Device returns a short residency tag, e.g. "cpu" or "cuda:0".
	Device() string
}

// CheckApply validates that x and y have lengths compatible with op
// before calling op.Apply(y, x). It exists so the handful of call sites
// that accept a raw Operator from a caller (entry points in package
// krylov) can fail eagerly with a precondition error instead of letting a
// misshapen call panic deep inside somebody else's Apply.
func CheckApply[T, FC any](op Operator[T, FC], y, x []FC) error {
	if len(x) != op.Cols() {
		return errors.Errorf("operator: input length %d does not match Cols() %d", len(x), op.Cols())
	}
	if len(y) != op.Rows() {
		return errors.Errorf("operator: output length %d does not match Rows() %d", len(y), op.Rows())
	}
	return nil
}
