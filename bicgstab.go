// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"github.com/pkg/errors"

	"github.com/krylov-go/krylov/field"
	"github.com/krylov-go/krylov/kernel"
	"github.com/krylov-go/krylov/operator"
)

// BiCGStabWorkspace holds the seven vectors BiCGStab reuses across calls
// besides x and dx: the residual r (which also holds the intermediate
// residual s between the two half-steps), the fixed shadow residual rt,
// the search direction p, its preconditioned image phat and v = A*phat,
// the preconditioned image shat of s, and t = A*shat.
//
// It is the second worked example (after CG-Lanczos and GMRES) of the
// same workspace/Field/kernel scaffolding applied to a short-recurrence,
// non-Hermitian method; unlike CG-Lanczos's coefficients, BiCGStab's
// rho/alpha/omega carry no real-by-construction guarantee, so they are
// kept in FC rather than T even when FC happens to be real.
type BiCGStabWorkspace[T, FC any] struct {
	f field.Field[T, FC]
	n int

	x  []FC
	dx []FC

	r, rt []FC
	p     []FC
	phat  []FC
	shat  []FC
	t     []FC
	v     []FC

	warm bool

	Stats SimpleStats[T]
}

// NewBiCGStabWorkspace allocates a BiCGStab workspace for systems of
// dimension n over the scalar arithmetic described by f.
func NewBiCGStabWorkspace[T, FC any](f field.Field[T, FC], n int) *BiCGStabWorkspace[T, FC] {
	return &BiCGStabWorkspace[T, FC]{
		f: f, n: n,
		x: make([]FC, n), dx: make([]FC, n),
		r: make([]FC, n), rt: make([]FC, n),
		p: make([]FC, n), phat: make([]FC, n),
		shat: make([]FC, n), t: make([]FC, n), v: make([]FC, n),
	}
}

// X returns the current approximate solution. The returned slice is owned
// by the workspace and is overwritten by the next Solve/SolveWarmStart.
func (ws *BiCGStabWorkspace[T, FC]) X() []FC { return ws.x }

// BiCGStab builds a fresh workspace and solves A*x = b from a cold start
// (x₀ = 0).
func BiCGStab[T, FC any](f field.Field[T, FC], A operator.Operator[T, FC], b []FC, opts BiCGStabOptions[T, FC]) (*BiCGStabWorkspace[T, FC], error) {
	ws := NewBiCGStabWorkspace[T, FC](f, len(b))
	if err := ws.Solve(A, b, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// BiCGStabWarmStart builds a fresh workspace and solves A*x = b starting
// from the supplied initial guess x0.
func BiCGStabWarmStart[T, FC any](f field.Field[T, FC], A operator.Operator[T, FC], b, x0 []FC, opts BiCGStabOptions[T, FC]) (*BiCGStabWorkspace[T, FC], error) {
	ws := NewBiCGStabWorkspace[T, FC](f, len(b))
	if err := ws.SolveWarmStart(A, b, x0, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// Solve solves A*x = b in place from a cold start (x₀ = 0), overwriting
// the workspace's solution and statistics.
func (ws *BiCGStabWorkspace[T, FC]) Solve(A operator.Operator[T, FC], b []FC, opts BiCGStabOptions[T, FC]) error {
	return ws.solve(A, b, nil, opts)
}

// SolveWarmStart solves A*x = b in place starting from the initial guess
// x0, overwriting the workspace's solution and statistics.
func (ws *BiCGStabWorkspace[T, FC]) SolveWarmStart(A operator.Operator[T, FC], b, x0 []FC, opts BiCGStabOptions[T, FC]) error {
	return ws.solve(A, b, x0, opts)
}

func (ws *BiCGStabWorkspace[T, FC]) solve(A operator.Operator[T, FC], b []FC, x0 []FC, opts BiCGStabOptions[T, FC]) error {
	f := ws.f
	n := ws.n

	if A.Rows() != A.Cols() {
		return errors.Errorf("krylov: bicgstab: operator is %d×%d, want square", A.Rows(), A.Cols())
	}
	if len(b) != n {
		return errors.Errorf("krylov: bicgstab: rhs length %d does not match workspace dimension %d", len(b), n)
	}
	if err := operator.CheckApply[T, FC](A, b, b); err != nil {
		return errors.Wrap(err, "krylov: bicgstab: operator dimension does not match rhs length")
	}
	if x0 != nil {
		if len(x0) != n {
			return errors.Errorf("krylov: bicgstab: initial guess length %d does not match workspace dimension %d", len(x0), n)
		}
		if err := operator.CheckApply[T, FC](A, x0, x0); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: operator dimension does not match initial guess length")
		}
	}
	if opts.M != nil {
		if err := operator.CheckApply[T, FC](opts.M, b, b); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: preconditioner dimension does not match")
		}
	}
	opts.setDefaults(f, n)

	ws.warm = x0 != nil
	ws.Stats.Stats.reset()
	ws.Stats.Inconsistent = false

	for i := range ws.x {
		ws.x[i] = f.Zero()
	}

	rhs := b
	if ws.warm {
		copy(ws.dx, x0)
		r0 := make([]FC, n)
		if err := A.Apply(r0, ws.dx); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: applying operator to initial guess")
		}
		kernel.ScalReal(f, n, f.RNeg(f.ROne()), r0)
		kernel.AxpyReal(f, n, f.ROne(), b, r0)
		rhs = r0
	}

	copy(ws.r, rhs)
	copy(ws.rt, ws.r)
	for i := range ws.p {
		ws.p[i] = f.Zero()
		ws.v[i] = f.Zero()
	}

	rNorm0 := kernel.Nrm2(f, n, ws.r)
	if f.RCmp(rNorm0, f.RZero()) == 0 {
		ws.Stats.Status = StatusZeroResidual
		ws.Stats.Solved = true
		if ws.warm {
			copy(ws.x, x0)
		}
		return nil
	}

	breakdownTol := f.RMul(f.REps(), f.REps())
	rhoPrev := f.One()
	alpha := f.Zero()
	omega := f.One()

	niter := 0
	status := StatusUnknown
	for status == StatusUnknown {
		niter++

		rho := kernel.Dot(f, n, ws.rt, ws.r)
		if f.RCmp(f.Abs(rho), breakdownTol) <= 0 {
			status = StatusBreakdown
			break
		}
		beta := f.Mul(f.Div(rho, rhoPrev), f.Div(alpha, omega))

		kernel.Axpy(f, n, f.Neg(omega), ws.v, ws.p)
		kernel.Axpby(f, n, f.One(), ws.r, beta, ws.p)

		if err := applyPrecond[T, FC](opts.M, ws.phat, ws.p); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: applying preconditioner")
		}
		if err := A.Apply(ws.v, ws.phat); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: applying operator")
		}

		rtv := kernel.Dot(f, n, ws.rt, ws.v)
		if f.RCmp(f.Abs(rtv), breakdownTol) <= 0 {
			status = StatusBreakdown
			break
		}
		alpha = f.Div(rho, rtv)

		kernel.Axpy(f, n, alpha, ws.phat, ws.x)
		kernel.Axpy(f, n, f.Neg(alpha), ws.v, ws.r)

		resNorm := kernel.Nrm2(f, n, ws.r)
		ws.Stats.record(opts.History, resNorm)
		if opts.Verbose > 0 && niter%opts.Verbose == 0 {
			log.Info().Int("iter", niter).Float64("resid", f.RToFloat64(resNorm)).Msg("bicgstab")
		}

		tol := f.RAdd(opts.Atol, f.RMul(opts.Rtol, rNorm0))
		converged := f.RCmp(resNorm, tol) <= 0
		itmaxHit := niter >= opts.ItMax
		callbackHit := opts.Callback != nil && opts.Callback(ws)

		switch {
		case converged:
			status = StatusSolved
		case itmaxHit:
			status = StatusIterationLimit
		case callbackHit:
			status = StatusUserRequestedExit
		}
		if status != StatusUnknown {
			break
		}

		if err := applyPrecond[T, FC](opts.M, ws.shat, ws.r); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: applying preconditioner")
		}
		if err := A.Apply(ws.t, ws.shat); err != nil {
			return errors.Wrap(err, "krylov: bicgstab: applying operator")
		}

		tt := kernel.Dot(f, n, ws.t, ws.t)
		omega = f.Div(kernel.Dot(f, n, ws.t, ws.r), tt)

		kernel.Axpy(f, n, omega, ws.shat, ws.x)
		kernel.Axpy(f, n, f.Neg(omega), ws.t, ws.r)

		resNorm = kernel.Nrm2(f, n, ws.r)
		ws.Stats.record(opts.History, resNorm)

		converged = f.RCmp(resNorm, tol) <= 0
		if converged {
			status = StatusSolved
			break
		}
		if f.RCmp(f.Abs(omega), breakdownTol) <= 0 {
			status = StatusBreakdown
			break
		}

		rhoPrev = rho
	}

	ws.Stats.NIter = niter
	ws.Stats.Solved = status == StatusSolved
	ws.Stats.Status = status

	if ws.warm {
		kernel.AxpyReal(f, n, f.ROne(), ws.dx, ws.x)
	}
	return nil
}
