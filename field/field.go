// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field supplies the scalar arithmetic that the rest of this
// module is generic over.
//
// Krylov methods need two kinds of scalars: a real type T used for norms,
// tolerances and Lanczos/Givens coefficients, and a (possibly complex)
// type FC used for the entries of vectors and operators. Rather than
// constraining T and FC to Go's built-in arithmetic types and relying on
// +, -, *, / operating on type parameters — which cannot express
// arbitrary-precision scalars such as *big.Float, whose arithmetic is
// method-based — every numerical package in this module takes a Field
// dictionary and calls its methods. T and FC themselves carry no
// constraint beyond any; genericity lives entirely in Field.
package field

// Field is a dictionary of scalar arithmetic for a real type T and a
// (possibly complex) type FC built over it. A Field value is stateless
// and safe for concurrent use; solvers call it on the hot path but never
// retain it beyond the lifetime of a single Solve call tree.
//
// Implementations are expected to be small value or pointer types with
// no allocation in any method for the float32/float64/complex64/
// complex128 cases; the *big.Float instantiation is the one place
// allocation is unavoidable, see BigFloat.
type Field[T, FC any] interface {
	// Zero and One return the additive and multiplicative identities of FC.
	Zero() FC
	One() FC

	// Add returns a + b.
	Add(a, b FC) FC
	// Sub returns a - b.
	Sub(a, b FC) FC
	// Mul returns a * b.
	Mul(a, b FC) FC
	// Div returns a / b.
	Div(a, b FC) FC
	// Neg returns -a.
	Neg(a FC) FC
	// Conj returns the complex conjugate of a (a itself when FC is real).
	Conj(a FC) FC
	// Scale returns alpha*a where alpha is real.
	Scale(alpha T, a FC) FC
	// RealPart returns Re(a).
	RealPart(a FC) T
	// Abs returns |a|.
	Abs(a FC) T

	// RZero and ROne are the additive and multiplicative identities of T.
	RZero() T
	ROne() T
	// RAdd, RSub, RMul and RDiv are the real-arithmetic counterparts of
	// Add, Sub, Mul and Div.
	RAdd(a, b T) T
	RSub(a, b T) T
	RMul(a, b T) T
	RDiv(a, b T) T
	// RNeg returns -a for a real scalar.
	RNeg(a T) T
	// RAbs returns |a| for a real scalar.
	RAbs(a T) T
	// RSqrt returns sqrt(a); a is assumed non-negative.
	RSqrt(a T) T
	// REps returns the machine epsilon of T.
	REps() T
	// RFromFloat64 converts a float64 constant (e.g. a default tolerance)
	// into T.
	RFromFloat64(x float64) T
	// RToFloat64 converts T to float64, for logging and diagnostics only;
	// implementations backed by arbitrary precision types may lose
	// accuracy here.
	RToFloat64(a T) float64
	// RCmp returns -1, 0 or +1 as a is less than, equal to, or greater
	// than b, mirroring (*big.Float).Cmp so that BigFloat needs no
	// special-casing in callers.
	RCmp(a, b T) int
}
