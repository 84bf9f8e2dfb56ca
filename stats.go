// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

// Status strings are the observable outcome of a solve; every method in
// this package sets Stats.Status to exactly one of these values.
const (
	StatusUnknown             = "unknown"
	StatusZeroResidual        = "x = 0 is a zero-residual solution"
	StatusSolved              = "solution good enough given atol and rtol"
	StatusIterationLimit      = "maximum number of iterations exceeded"
	StatusNegativeCurvature   = "negative curvature"
	StatusLeastSquares        = "found approximate least-squares solution"
	StatusUserRequestedExit   = "user-requested exit"
	StatusBreakdown           = "breakdown: near-singular Krylov recurrence"
)

// Stats holds the statistics common to every method in this package:
// residual history, iteration count, and terminal status.
type Stats[T any] struct {
	// Residuals is the recorded history of ‖r_k‖ (or its preconditioned
	// estimate). It is empty unless history recording was requested, and
	// grows on demand — it is never preallocated to the iteration cap.
	Residuals []T

	// NIter is the number of inner iterations performed.
	NIter int

	// Solved reports whether the solve satisfied its stopping tolerance.
	Solved bool

	// Status is one of the Status* constants above.
	Status string
}

func (s *Stats[T]) record(history bool, r T) {
	if history {
		s.Residuals = append(s.Residuals, r)
	}
}

func (s *Stats[T]) reset() {
	s.Residuals = s.Residuals[:0]
	s.NIter = 0
	s.Solved = false
	s.Status = StatusUnknown
}

// LanczosStats is the Stats record produced by CG-Lanczos.
type LanczosStats[T any] struct {
	Stats[T]

	// Anorm is the estimated 2-norm of A, accumulated from the Lanczos
	// tridiagonal's Frobenius norm.
	Anorm T

	// Indefinite reports whether a non-positive curvature direction was
	// detected (only meaningful when CheckCurvature was requested).
	Indefinite bool
}

// SimpleStats is the Stats record produced by GMRES (and BiCGStab).
type SimpleStats[T any] struct {
	Stats[T]

	// Inconsistent reports that the right-hand side did not lie in the
	// range of A (within tolerance): the returned x minimises the
	// residual over the final Krylov subspace rather than solving the
	// system exactly.
	Inconsistent bool
}
