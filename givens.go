// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import "github.com/krylov-go/krylov/field"

// applyGivens applies the rotation (c, s) to the pair (a, b), returning
//
//	[ c    conj(s) ] [a]
//	[ s      -c    ] [b]
//
// the same matrix symGivens builds. GMRES uses this to fold each
// previously-computed rotation into a freshly formed column of the
// Hessenberg matrix before computing that column's own rotation.
func applyGivens[T, FC any](f field.Field[T, FC], c T, s FC, a, b FC) (FC, FC) {
	newA := f.Add(f.Scale(c, a), f.Mul(f.Conj(s), b))
	newB := f.Sub(f.Mul(s, a), f.Scale(c, b))
	return newA, newB
}

// symGivens computes a Givens rotation (c, s, r) such that
//
//	[ c    conj(s) ] [a]   [r]
//	[ s      -c    ] [b] = [0]
//
// with c real and non-negative and |r|^2 = |a|^2+|b|^2 always; r is
// additionally real and non-negative whenever a itself is real and
// non-negative (in particular in the fully real instantiation, FC = T,
// r = sqrt(a^2+b^2) as usual). It is the stable "SYM_GIVENS" formulation
// used throughout the sparse iterative-methods literature (see e.g.
// Saad's Iterative Methods for Sparse Linear Systems, §6.5.9),
// generalised here to complex a and b over the field.Field dictionary,
// and handles the degenerate cases a = 0 and b = 0 without ever forming
// 0/0. GMRES's correctness does not depend on r being real when a is
// complex — only its magnitude is used, both for the least-squares
// back-substitution and for the breakdown/inconsistency threshold check.
//
// GMRES calls this once per Arnoldi step to fold the new subdiagonal
// entry of the Hessenberg matrix into the running QR factorisation; see
// gmres.go.
func symGivens[T, FC any](f field.Field[T, FC], a, b FC) (c T, s FC, r FC) {
	rzero := f.RZero()
	absA := f.Abs(a)
	absB := f.Abs(b)

	if f.RCmp(absB, rzero) == 0 {
		// b == 0: the rotation is the identity and r = a. r is only
		// guaranteed real-nonnegative when b is real, which it
		// trivially is here (it is exactly zero).
		return f.ROne(), f.Zero(), a
	}
	if f.RCmp(absA, rzero) == 0 {
		// a == 0: rotate fully onto b; c = 0, s = b/|b|, r = |b|, so that
		// conj(s)*b = conj(b)/|b| * b = |b| = r.
		phase := f.Div(b, f.Scale(absB, f.One()))
		return rzero, phase, f.Scale(absB, f.One())
	}

	rho := f.RSqrt(f.RAdd(f.RMul(absA, absA), f.RMul(absB, absB)))
	c = f.RDiv(absA, rho)
	// phase is a/|a|, so that r = rho*phase has the phase of a: r = rho
	// for real positive a, and r = -rho for real negative a until the
	// sign flip below.
	phase := f.Div(a, f.Scale(absA, f.One()))
	s = f.Div(f.Mul(f.Conj(phase), b), f.Scale(rho, f.One()))
	r = f.Scale(rho, phase)
	if aNeg {
		c, s, r = f.RNeg(c), f.Neg(s), f.Neg(r)
	}
	return c, s, r
}
