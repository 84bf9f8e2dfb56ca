// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements the small set of in-place, allocation-free
// BLAS-level vector primitives the solvers in package krylov are built
// from: axpy, axpby, scal, dot, dotr, nrm2 and copy.
//
// Every function except Copy, which needs no arithmetic, takes a
// field.Field dictionary as its first argument, and none of them
// allocates, so a caller may safely call these inside a solver's
// inner loop. Because dispatch goes through Field rather than native
// operators, the same functions serve plain host slices today and would
// serve device-resident slices unchanged if a Field implementation
// dispatched its arithmetic to device kernels instead of doing it inline
// (see the device residency note in the module's SPEC_FULL.md).
package kernel

import "github.com/krylov-go/krylov/field"

// Copy sets y[i] = x[i] for i in [0,n).
func Copy[T, FC any](n int, x, y []FC) {
	copy(y[:n], x[:n])
}

// Scal computes x ← alpha*x in place.
func Scal[T, FC any](f field.Field[T, FC], n int, alpha FC, x []FC) {
	for i := 0; i < n; i++ {
		x[i] = f.Mul(alpha, x[i])
	}
}

// ScalReal computes x ← alpha*x in place, for a real alpha.
func ScalReal[T, FC any](f field.Field[T, FC], n int, alpha T, x []FC) {
	for i := 0; i < n; i++ {
		x[i] = f.Scale(alpha, x[i])
	}
}

// Axpy computes y ← alpha*x + y in place.
func Axpy[T, FC any](f field.Field[T, FC], n int, alpha FC, x, y []FC) {
	for i := 0; i < n; i++ {
		y[i] = f.Add(f.Mul(alpha, x[i]), y[i])
	}
}

// AxpyReal computes y ← alpha*x + y in place, for a real alpha.
func AxpyReal[T, FC any](f field.Field[T, FC], n int, alpha T, x, y []FC) {
	for i := 0; i < n; i++ {
		y[i] = f.Add(f.Scale(alpha, x[i]), y[i])
	}
}

// Axpby computes y ← alpha*x + beta*y in place.
func Axpby[T, FC any](f field.Field[T, FC], n int, alpha FC, x []FC, beta FC, y []FC) {
	for i := 0; i < n; i++ {
		y[i] = f.Add(f.Mul(alpha, x[i]), f.Mul(beta, y[i]))
	}
}

// Dot returns Σ conj(x[i])*y[i].
func Dot[T, FC any](f field.Field[T, FC], n int, x, y []FC) FC {
	sum := f.Zero()
	for i := 0; i < n; i++ {
		sum = f.Add(sum, f.Mul(f.Conj(x[i]), y[i]))
	}
	return sum
}

// Dotr returns Re(Σ conj(x[i])*y[i]), used whenever the result is known
// to be real by construction (e.g. vᴴMv for Hermitian positive-definite
// M).
func Dotr[T, FC any](f field.Field[T, FC], n int, x, y []FC) T {
	return f.RealPart(Dot(f, n, x, y))
}

// Nrm2 returns sqrt(Re(xᴴx)).
func Nrm2[T, FC any](f field.Field[T, FC], n int, x []FC) T {
	return f.RSqrt(Dotr(f, n, x, x))
}
