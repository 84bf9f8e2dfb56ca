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

// CGLanczosWorkspace holds every vector and scalar the CG-Lanczos solver
// reuses across calls. It is built once per (n, scalar type) and may be
// driven through Solve or SolveWarmStart arbitrarily many times without
// reallocating.
//
// The Lanczos basis is carried in two roles, following spec §4.4: mv is
// the raw companion vector satisfying (by induction) mv_k = M·v_k, built
// directly by the three-term recurrence without ever calling M itself
// forward; v is the actual Lanczos vector A is applied to, recovered from
// mv by one preconditioner application per step (M's Apply/Solve, as
// driven through applyPrecond, plays the role of M⁻¹ here — the usual
// meaning of "applying the preconditioner"). Both buffers are allocated
// unconditionally, even with no preconditioner, trading a little memory
// for a solver loop with no M-is-identity branch; see DESIGN.md.
type CGLanczosWorkspace[T, FC any] struct {
	f field.Field[T, FC]
	n int

	x  []FC
	dx []FC

	v      []FC
	vNext  []FC
	mv     []FC
	mvPrev []FC
	mvNext []FC
	p      []FC

	warm bool

	Stats LanczosStats[T]
}

// NewCGLanczosWorkspace allocates a CG-Lanczos workspace for systems of
// dimension n over the scalar arithmetic described by f.
func NewCGLanczosWorkspace[T, FC any](f field.Field[T, FC], n int) *CGLanczosWorkspace[T, FC] {
	return &CGLanczosWorkspace[T, FC]{
		f:      f,
		n:      n,
		x:      make([]FC, n),
		dx:     make([]FC, n),
		v:      make([]FC, n),
		vNext:  make([]FC, n),
		mv:     make([]FC, n),
		mvPrev: make([]FC, n),
		mvNext: make([]FC, n),
		p:      make([]FC, n),
	}
}

// X returns the current approximate solution. The returned slice is owned
// by the workspace and is overwritten by the next Solve/SolveWarmStart.
func (ws *CGLanczosWorkspace[T, FC]) X() []FC { return ws.x }

// CGLanczos builds a fresh workspace and solves A*x = b from a cold start
// (x₀ = 0).
func CGLanczos[T, FC any](f field.Field[T, FC], A operator.Operator[T, FC], b []FC, opts CGLanczosOptions[T, FC]) (*CGLanczosWorkspace[T, FC], error) {
	ws := NewCGLanczosWorkspace[T, FC](f, len(b))
	if err := ws.Solve(A, b, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// CGLanczosWarmStart builds a fresh workspace and solves A*x = b starting
// from the supplied initial guess x0.
func CGLanczosWarmStart[T, FC any](f field.Field[T, FC], A operator.Operator[T, FC], b, x0 []FC, opts CGLanczosOptions[T, FC]) (*CGLanczosWorkspace[T, FC], error) {
	ws := NewCGLanczosWorkspace[T, FC](f, len(b))
	if err := ws.SolveWarmStart(A, b, x0, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// Solve solves A*x = b in place from a cold start (x₀ = 0), overwriting
// the workspace's solution and statistics.
func (ws *CGLanczosWorkspace[T, FC]) Solve(A operator.Operator[T, FC], b []FC, opts CGLanczosOptions[T, FC]) error {
	return ws.solve(A, b, nil, opts)
}

// SolveWarmStart solves A*x = b in place starting from the initial guess
// x0, overwriting the workspace's solution and statistics.
func (ws *CGLanczosWorkspace[T, FC]) SolveWarmStart(A operator.Operator[T, FC], b, x0 []FC, opts CGLanczosOptions[T, FC]) error {
	return ws.solve(A, b, x0, opts)
}

func (ws *CGLanczosWorkspace[T, FC]) solve(A operator.Operator[T, FC], b []FC, x0 []FC, opts CGLanczosOptions[T, FC]) error {
	f := ws.f
	n := ws.n

	if A.Rows() != A.Cols() {
		return errors.Errorf("krylov: cglanczos: operator is %d×%d, want square", A.Rows(), A.Cols())
	}
	if len(b) != n {
		return errors.Errorf("krylov: cglanczos: rhs length %d does not match workspace dimension %d", len(b), n)
	}
	if err := operator.CheckApply[T, FC](A, b, b); err != nil {
		return errors.Wrap(err, "krylov: cglanczos: operator dimension does not match rhs length")
	}
	if x0 != nil {
		if len(x0) != n {
			return errors.Errorf("krylov: cglanczos: initial guess length %d does not match workspace dimension %d", len(x0), n)
		}
		if err := operator.CheckApply[T, FC](A, x0, x0); err != nil {
			return errors.Wrap(err, "krylov: cglanczos: operator dimension does not match initial guess length")
		}
	}
	if opts.M != nil {
		if err := operator.CheckApply[T, FC](opts.M, b, b); err != nil {
			return errors.Wrap(err, "krylov: cglanczos: preconditioner dimension does not match")
		}
	}
	opts.setDefaults(f, n)

	ws.warm = x0 != nil
	ws.Stats.Stats.reset()
	ws.Stats.Anorm = f.RZero()
	ws.Stats.Indefinite = false

	for i := range ws.x {
		ws.x[i] = f.Zero()
	}

	rhs := b
	if ws.warm {
		// Solve for the correction Δx against the residual r0 = b - A*x0,
		// then add x0 back in once the inner solve is done.
		copy(ws.dx, x0)
		// mvNext is free until the loop's first A.Apply overwrites it.
		r0 := ws.mvNext
		if err := A.Apply(r0, ws.dx); err != nil {
			return errors.Wrap(err, "krylov: cglanczos: applying operator to initial guess")
		}
		kernel.ScalReal(f, n, f.RNeg(f.ROne()), r0)
		kernel.AxpyReal(f, n, f.ROne(), b, r0)
		rhs = r0
	}

	copy(ws.mv, rhs)
	if err := applyPrecond[T, FC](opts.M, ws.v, rhs); err != nil {
		return errors.Wrap(err, "krylov: cglanczos: applying preconditioner to initial residual")
	}

	beta1Sq := kernel.Dotr(f, n, ws.v, ws.mv)
	beta1 := f.RSqrt(ramax(f, beta1Sq, f.RZero()))

	if f.RCmp(beta1, f.RZero()) == 0 {
		ws.Stats.Status = StatusZeroResidual
		ws.Stats.Solved = true
		if ws.warm {
			copy(ws.x, x0)
		}
		return nil
	}

	invBeta1 := f.RDiv(f.ROne(), beta1)
	kernel.ScalReal(f, n, invBeta1, ws.v)
	kernel.ScalReal(f, n, invBeta1, ws.mv)
	for i := range ws.mvPrev {
		ws.mvPrev[i] = f.Zero()
	}
	// The seed direction is σ₁·v₁ = β₁·v₁ (σ₁ = β₁ per spec), which is
	// exactly p_1 from the p_{k+1} = σ_{k+1}·v_{k+1} + ω_k·p_k recurrence
	// evaluated at its base case (ω₀ = 0). β₁·v₁ is the preconditioned
	// residual applyPrecond(M, r₀) (r₀ itself when M is nil), the direction
	// preconditioned CG starts from.
	copy(ws.p, ws.v)
	kernel.ScalReal(f, n, beta1, ws.p)

	sigma := beta1
	omega := f.RZero()
	gamma := f.ROne()
	beta := beta1
	betaPrev := f.RZero()
	rNorm0 := beta1

	niter := 0
	status := StatusUnknown
	for {
		niter++

		if err := A.Apply(ws.mvNext, ws.v); err != nil {
			return errors.Wrap(err, "krylov: cglanczos: applying operator")
		}
		delta := kernel.Dotr(f, n, ws.v, ws.mvNext)

		kernel.AxpyReal(f, n, f.RNeg(delta), ws.mv, ws.mvNext)
		kernel.AxpyReal(f, n, f.RNeg(beta), ws.mvPrev, ws.mvNext)

		if err := applyPrecond[T, FC](opts.M, ws.vNext, ws.mvNext); err != nil {
			return errors.Wrap(err, "krylov: cglanczos: applying preconditioner")
		}

		betaNextSq := kernel.Dotr(f, n, ws.vNext, ws.mvNext)
		betaNext := f.RSqrt(ramax(f, betaNextSq, f.RZero()))

		ws.Stats.Anorm = f.RAdd(ws.Stats.Anorm,
			f.RAdd(f.RAdd(f.RMul(betaPrev, betaPrev), f.RMul(beta, beta)), f.RMul(delta, delta)))

		gammaCorrection := f.RZero()
		if f.RCmp(gamma, f.RZero()) != 0 {
			gammaCorrection = f.RDiv(omega, gamma)
		}
		// γ_k = 1/denom, and denom ≤ 0 is exactly the non-positive
		// curvature condition (pᴴAp ≤ 0); checking the denominator
		// directly, rather than the quotient, also catches the
		// denom = 0 breakdown case without ever forming 1/0.
		denom := f.RSub(delta, gammaCorrection)
		negativeCurvature := f.RCmp(denom, f.RZero()) <= 0
		if opts.CheckCurvature && negativeCurvature {
			ws.Stats.Indefinite = true
			status = StatusNegativeCurvature
			break
		}
		gammaNext := f.RDiv(f.ROne(), denom)

		kernel.AxpyReal(f, n, gammaNext, ws.p, ws.x)

		sigmaNext := f.RNeg(f.RMul(f.RMul(betaNext, gammaNext), sigma))
		omegaNext := f.RMul(f.RMul(betaNext, gammaNext), f.RMul(betaNext, gammaNext))
		rNorm := f.RAbs(sigmaNext)

		ws.Stats.record(opts.History, rNorm)
		if opts.Verbose > 0 && niter%opts.Verbose == 0 {
			log.Info().Int("iter", niter).Float64("resid", f.RToFloat64(rNorm)).Msg("cglanczos")
		}

		switch {
		case f.RCmp(rNorm, f.RAdd(opts.Atol, f.RMul(opts.Rtol, rNorm0))) <= 0:
			status = StatusSolved
		case f.RCmp(f.RAdd(rNorm, f.ROne()), f.ROne()) <= 0:
			status = StatusSolved
		case f.RCmp(betaNext, f.RZero()) == 0:
			// Lucky breakdown: the Krylov subspace is exhausted and the
			// current iterate already solves the projected system.
			status = StatusSolved
		case niter >= opts.ItMax:
			status = StatusIterationLimit
		case opts.Callback != nil && opts.Callback(ws):
			status = StatusUserRequestedExit
		}

		if status != StatusUnknown {
			break
		}

		invBetaNext := f.RDiv(f.ROne(), betaNext)
		kernel.ScalReal(f, n, invBetaNext, ws.vNext)
		kernel.ScalReal(f, n, invBetaNext, ws.mvNext)

		ws.v, ws.vNext = ws.vNext, ws.v
		ws.mvPrev, ws.mv, ws.mvNext = ws.mv, ws.mvNext, ws.mvPrev

		kernel.ScalReal(f, n, omegaNext, ws.p)
		kernel.AxpyReal(f, n, sigmaNext, ws.v, ws.p)

		sigma, omega, gamma = sigmaNext, omegaNext, gammaNext
		betaPrev, beta = beta, betaNext
	}

	ws.Stats.NIter = niter
	ws.Stats.Solved = status == StatusSolved
	ws.Stats.Status = status
	ws.Stats.Anorm = f.RSqrt(ramax(f, ws.Stats.Anorm, f.RZero()))

	if ws.warm {
		kernel.AxpyReal(f, n, f.ROne(), ws.dx, ws.x)
	}
	return nil
}

// ramax returns the larger of a and b; it exists so that small negative
// values produced by round-off before a sqrt never propagate into NaN.
func ramax[T, FC any](f field.Field[T, FC], a, b T) T {
	if f.RCmp(a, b) < 0 {
		return b
	}
	return a
}
