// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"reflect"

	"github.com/krylov-go/krylov/field"
	"github.com/krylov-go/krylov/operator"
)

// unset reports whether x is the zero value of T, used to detect an
// un-configured option field. Reflection, rather than ==, is what lets
// this work for both comparable T (float32, float64: zero value 0) and
// T = *big.Float (zero value a nil pointer) without constraining T.
func unset[T any](x T) bool {
	return reflect.ValueOf(&x).Elem().IsZero()
}

// CGLanczosOptions holds the tunables for a CG-Lanczos solve. A zero value
// is valid: every field defaults per the doc comments below.
type CGLanczosOptions[T, FC any] struct {
	// M is an optional Hermitian positive-definite preconditioner. A nil M
	// is the identity (no preconditioning).
	M operator.Operator[T, FC]

	// Atol and Rtol are the absolute and relative tolerances on ‖r_k‖_M.
	// Zero selects the default sqrt(eps(T)) for each.
	Atol, Rtol T

	// ItMax caps the number of inner iterations. Zero selects 2*n.
	ItMax int

	// CheckCurvature enables the non-positive-curvature monitor; when a
	// non-positive γ_k is observed the solve terminates with
	// StatusNegativeCurvature instead of continuing.
	CheckCurvature bool

	// Verbose, when positive, logs one event every Verbose iterations.
	Verbose int

	// History, when true, appends every ‖r_k‖_M to Stats.Residuals.
	History bool

	// Callback, when non-nil, is polled once per iteration; returning true
	// forces a clean termination with StatusUserRequestedExit.
	Callback func(*CGLanczosWorkspace[T, FC]) bool
}

func (o *CGLanczosOptions[T, FC]) setDefaults(f field.Field[T, FC], n int) {
	eps := f.REps()
	sqrtEps := f.RSqrt(eps)
	if unset(o.Atol) {
		o.Atol = sqrtEps
	}
	if unset(o.Rtol) {
		o.Rtol = sqrtEps
	}
	if o.ItMax == 0 {
		o.ItMax = 2 * n
	}
}

// GMRESOptions holds the tunables for a GMRES solve. A zero value is
// valid: every field defaults per the doc comments below.
type GMRESOptions[T, FC any] struct {
	// M and N are optional left and right preconditioners. A nil value is
	// the identity.
	M, N operator.Operator[T, FC]

	// Atol and Rtol are the absolute and relative tolerances on the
	// preconditioned residual norm. Zero selects the default sqrt(eps(T))
	// for each.
	Atol, Rtol T

	// ItMax caps the total number of inner iterations across all restart
	// passes. Zero selects 2*n.
	ItMax int

	// Memory is the Arnoldi basis capacity: the restart window when
	// Restart is true, or a capacity hint (storage grows past it) when
	// Restart is false. Zero selects 20.
	Memory int

	// Restart enables GMRES(Memory): the basis is rebuilt from the
	// current iterate every Memory inner iterations.
	Restart bool

	// Reorthogonalize enables a second modified Gram-Schmidt pass at every
	// Arnoldi step, at roughly double the orthogonalization cost.
	Reorthogonalize bool

	// Verbose, when positive, logs one event every Verbose iterations.
	Verbose int

	// History, when true, appends every residual-norm estimate to
	// Stats.Residuals.
	History bool

	// Callback, when non-nil, is polled once per iteration; returning true
	// forces a clean termination with StatusUserRequestedExit.
	Callback func(*GMRESWorkspace[T, FC]) bool
}

func (o *GMRESOptions[T, FC]) setDefaults(f field.Field[T, FC], n int) {
	eps := f.REps()
	sqrtEps := f.RSqrt(eps)
	if unset(o.Atol) {
		o.Atol = sqrtEps
	}
	if unset(o.Rtol) {
		o.Rtol = sqrtEps
	}
	if o.ItMax == 0 {
		o.ItMax = 2 * n
	}
	if o.Memory == 0 {
		o.Memory = 20
	}
	if o.Memory > n {
		o.Memory = n
	}
}

// BiCGStabOptions holds the tunables for a BiCGStab solve. A zero value
// is valid: every field defaults per the doc comments below.
type BiCGStabOptions[T, FC any] struct {
	// M is an optional preconditioner, applied identically to both
	// half-steps. A nil M is the identity (no preconditioning).
	M operator.Operator[T, FC]

	// Atol and Rtol are the absolute and relative tolerances on ‖r_k‖₂.
	// Zero selects the default sqrt(eps(T)) for each.
	Atol, Rtol T

	// ItMax caps the number of inner iterations. Zero selects 2*n.
	ItMax int

	// Verbose, when positive, logs one event every Verbose iterations.
	Verbose int

	// History, when true, appends every ‖r_k‖₂ to Stats.Residuals.
	History bool

	// Callback, when non-nil, is polled once per iteration; returning true
	// forces a clean termination with StatusUserRequestedExit.
	Callback func(*BiCGStabWorkspace[T, FC]) bool
}

func (o *BiCGStabOptions[T, FC]) setDefaults(f field.Field[T, FC], n int) {
	eps := f.REps()
	sqrtEps := f.RSqrt(eps)
	if unset(o.Atol) {
		o.Atol = sqrtEps
	}
	if unset(o.Rtol) {
		o.Rtol = sqrtEps
	}
	if o.ItMax == 0 {
		o.ItMax = 2 * n
	}
}
