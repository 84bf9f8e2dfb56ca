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

// GMRESWorkspace holds the growing Arnoldi basis, the incrementally
// factored Hessenberg matrix, and the scratch vectors GMRES reuses across
// restart passes and across repeat calls to Solve/SolveWarmStart.
//
// V, R, c and s grow by appending rather than being preallocated to
// Memory: a restart window never needs more than Memory+1 columns, so
// after the first pass every further pass reuses the same backing
// arrays, but an unrestarted solve is free to outgrow the initial
// capacity hint — this is the one storage growth spec §5 allows outside
// of the arbitrary-precision Field.
type GMRESWorkspace[T, FC any] struct {
	f field.Field[T, FC]
	n int

	x  []FC
	dx []FC

	// V[i] is the i-th orthonormal Arnoldi basis vector.
	V [][]FC
	// R[j] is the j-th column of the upper-triangular R factor of the
	// Hessenberg matrix, holding entries R[0..j][j]; the subdiagonal
	// entry that Givens rotation j zeroes out is never stored.
	R [][]FC
	c []T
	s []FC
	// z is the rotated right-hand side of the least-squares problem,
	// length k+1 after k Arnoldi steps in the current pass.
	z []FC
	// k is the number of completed Arnoldi steps in the current pass.
	k int

	w []FC
	p []FC
	q []FC

	// col is scratch for the Hessenberg column under construction in the
	// current Arnoldi step, reused across iterations; it grows the same
	// way V does, only when a new step needs more room than its backing
	// array already has.
	col []FC
	// rbuf holds the initial residual b - A*x0 of a warm start, which
	// serves as the right-hand side for the rest of that solve.
	rbuf []FC
	// xr and tmp are scratch for folding the least-squares correction
	// (and, if right-preconditioned, its preconditioned image) into x at
	// a pass boundary; xr is then reused for the restart residual.
	xr, tmp []FC
	// y is scratch for the back-substitution result at a pass boundary,
	// grown the same way col is.
	y []FC

	warm bool

	Stats SimpleStats[T]
}

// NewGMRESWorkspace allocates a GMRES workspace for systems of dimension n
// over the scalar arithmetic described by f. The Arnoldi basis itself is
// grown lazily, one vector at a time as Arnoldi steps reach it; it is not
// preallocated to GMRESOptions.Memory.
func NewGMRESWorkspace[T, FC any](f field.Field[T, FC], n int) *GMRESWorkspace[T, FC] {
	return &GMRESWorkspace[T, FC]{
		f:    f,
		n:    n,
		x:    make([]FC, n),
		dx:   make([]FC, n),
		w:    make([]FC, n),
		p:    make([]FC, n),
		q:    make([]FC, n),
		rbuf: make([]FC, n),
		xr:   make([]FC, n),
		tmp:  make([]FC, n),
	}
}

// X returns the current approximate solution. The returned slice is owned
// by the workspace and is overwritten by the next Solve/SolveWarmStart.
func (ws *GMRESWorkspace[T, FC]) X() []FC { return ws.x }

// GMRES builds a fresh workspace and solves A*x = b from a cold start
// (x₀ = 0).
func GMRES[T, FC any](f field.Field[T, FC], A operator.Operator[T, FC], b []FC, opts GMRESOptions[T, FC]) (*GMRESWorkspace[T, FC], error) {
	ws := NewGMRESWorkspace[T, FC](f, len(b))
	if err := ws.Solve(A, b, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// GMRESWarmStart builds a fresh workspace and solves A*x = b starting from
// the supplied initial guess x0.
func GMRESWarmStart[T, FC any](f field.Field[T, FC], A operator.Operator[T, FC], b, x0 []FC, opts GMRESOptions[T, FC]) (*GMRESWorkspace[T, FC], error) {
	ws := NewGMRESWorkspace[T, FC](f, len(b))
	if err := ws.SolveWarmStart(A, b, x0, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

// Solve solves A*x = b in place from a cold start (x₀ = 0), overwriting
// the workspace's solution and statistics.
func (ws *GMRESWorkspace[T, FC]) Solve(A operator.Operator[T, FC], b []FC, opts GMRESOptions[T, FC]) error {
	return ws.solve(A, b, nil, opts)
}

// SolveWarmStart solves A*x = b in place starting from the initial guess
// x0, overwriting the workspace's solution and statistics.
func (ws *GMRESWorkspace[T, FC]) SolveWarmStart(A operator.Operator[T, FC], b, x0 []FC, opts GMRESOptions[T, FC]) error {
	return ws.solve(A, b, x0, opts)
}

func (ws *GMRESWorkspace[T, FC]) ensureCapacity(need int) {
	for len(ws.V) < need {
		ws.V = append(ws.V, make([]FC, ws.n))
	}
}

// growTo returns buf resliced to length need, reallocating only when its
// existing backing array is too small; used for every scratch buffer
// whose required length tracks the Arnoldi step count (ws.col, ws.y),
// giving them the same amortized zero-allocation growth ensureCapacity
// gives ws.V.
func growTo[FC any](buf []FC, need int) []FC {
	if cap(buf) < need {
		return make([]FC, need)
	}
	return buf[:need]
}

// resetBasis (re)starts the Arnoldi process from the preconditioned
// residual currently sitting in ws.q, whose norm is rNorm.
func (ws *GMRESWorkspace[T, FC]) resetBasis(rNorm T) {
	f := ws.f
	ws.ensureCapacity(1)
	copy(ws.V[0], ws.q)
	kernel.ScalReal(f, ws.n, f.RDiv(f.ROne(), rNorm), ws.V[0])
	ws.z = append(ws.z[:0], f.Scale(rNorm, f.One()))
	ws.c = ws.c[:0]
	ws.s = ws.s[:0]
	ws.R = ws.R[:0]
	ws.k = 0
}

// eps34 returns eps(T)^(3/4), the breakdown/rank-deficiency threshold used
// throughout GMRES's Arnoldi step and back-substitution.
func eps34[T, FC any](f field.Field[T, FC]) T {
	eps := f.REps()
	half := f.RSqrt(eps)
	quarter := f.RSqrt(half)
	return f.RMul(half, quarter)
}

// backSolve solves the k×k upper-triangular system R*y = z[:k], reporting
// inconsistent if a diagonal entry is too small to divide by safely — in
// which case y's corresponding entry is left at zero and the resulting x
// is a least-squares rather than exact solution.
func (ws *GMRESWorkspace[T, FC]) backSolve(k int) (y []FC, inconsistent bool) {
	f := ws.f
	thresh := eps34(f)
	ws.y = growTo(ws.y, k)
	y = ws.y
	for i := k - 1; i >= 0; i-- {
		sum := ws.z[i]
		for j := i + 1; j < k; j++ {
			sum = f.Sub(sum, f.Mul(ws.R[j][i], y[j]))
		}
		diag := ws.R[i][i]
		if f.RCmp(f.Abs(diag), thresh) <= 0 {
			y[i] = f.Zero()
			inconsistent = true
			continue
		}
		y[i] = f.Div(sum, diag)
	}
	return y, inconsistent
}

func (ws *GMRESWorkspace[T, FC]) solve(A operator.Operator[T, FC], b []FC, x0 []FC, opts GMRESOptions[T, FC]) error {
	f := ws.f
	n := ws.n

	if A.Rows() != A.Cols() {
		return errors.Errorf("krylov: gmres: operator is %d×%d, want square", A.Rows(), A.Cols())
	}
	if len(b) != n {
		return errors.Errorf("krylov: gmres: rhs length %d does not match workspace dimension %d", len(b), n)
	}
	if err := operator.CheckApply[T, FC](A, b, b); err != nil {
		return errors.Wrap(err, "krylov: gmres: operator dimension does not match rhs length")
	}
	if x0 != nil {
		if len(x0) != n {
			return errors.Errorf("krylov: gmres: initial guess length %d does not match workspace dimension %d", len(x0), n)
		}
		if err := operator.CheckApply[T, FC](A, x0, x0); err != nil {
			return errors.Wrap(err, "krylov: gmres: operator dimension does not match initial guess length")
		}
	}
	if opts.M != nil {
		if err := operator.CheckApply[T, FC](opts.M, b, b); err != nil {
			return errors.Wrap(err, "krylov: gmres: left preconditioner dimension does not match")
		}
	}
	if opts.N != nil {
		if err := operator.CheckApply[T, FC](opts.N, b, b); err != nil {
			return errors.Wrap(err, "krylov: gmres: right preconditioner dimension does not match")
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
		if err := A.Apply(ws.rbuf, ws.dx); err != nil {
			return errors.Wrap(err, "krylov: gmres: applying operator to initial guess")
		}
		kernel.ScalReal(f, n, f.RNeg(f.ROne()), ws.rbuf)
		kernel.AxpyReal(f, n, f.ROne(), b, ws.rbuf)
		rhs = ws.rbuf
	}

	if err := applyPrecond[T, FC](opts.M, ws.q, rhs); err != nil {
		return errors.Wrap(err, "krylov: gmres: applying left preconditioner to initial residual")
	}
	rNorm0 := kernel.Nrm2(f, n, ws.q)
	if f.RCmp(rNorm0, f.RZero()) == 0 {
		ws.Stats.Status = StatusZeroResidual
		ws.Stats.Solved = true
		if ws.warm {
			copy(ws.x, x0)
		}
		return nil
	}
	ws.resetBasis(rNorm0)

	niter := 0
	status := StatusUnknown
	for status == StatusUnknown {
		k := ws.k
		ws.ensureCapacity(k + 1)

		if err := applyPrecond[T, FC](opts.N, ws.p, ws.V[k]); err != nil {
			return errors.Wrap(err, "krylov: gmres: applying right preconditioner")
		}
		if err := A.Apply(ws.w, ws.p); err != nil {
			return errors.Wrap(err, "krylov: gmres: applying operator")
		}
		if err := applyPrecond[T, FC](opts.M, ws.q, ws.w); err != nil {
			return errors.Wrap(err, "krylov: gmres: applying left preconditioner")
		}

		col := growTo(ws.col, k+2)
		ws.col = col
		for i := 0; i <= k; i++ {
			h := kernel.Dot(f, n, ws.V[i], ws.q)
			col[i] = h
			kernel.Axpy(f, n, f.Neg(h), ws.V[i], ws.q)
		}
		if opts.Reorthogonalize {
			for i := 0; i <= k; i++ {
				corr := kernel.Dot(f, n, ws.V[i], ws.q)
				col[i] = f.Add(col[i], corr)
				kernel.Axpy(f, n, f.Neg(corr), ws.V[i], ws.q)
			}
		}

		hNext := kernel.Nrm2(f, n, ws.q)
		thresh := eps34(f)
		breakdown := f.RCmp(hNext, thresh) <= 0
		col[k+1] = f.Scale(hNext, f.One())
		if !breakdown {
			ws.ensureCapacity(k + 2)
			copy(ws.V[k+1], ws.q)
			kernel.ScalReal(f, n, f.RDiv(f.ROne(), hNext), ws.V[k+1])
		}

		for i := 0; i < k; i++ {
			col[i], col[i+1] = applyGivens(f, ws.c[i], ws.s[i], col[i], col[i+1])
		}
		ck, sk, rkk := symGivens(f, col[k], col[k+1])
		ws.c = append(ws.c[:k], ck)
		ws.s = append(ws.s[:k], sk)
		col[k] = rkk
		// R keeps one column per Arnoldi step. The column is copied out of
		// the reused col scratch buffer rather than aliasing it, into the
		// column an earlier pass left at this index when there is one.
		var rcol []FC
		if k < cap(ws.R) {
			rcol = ws.R[:k+1][k]
		}
		rcol = growTo(rcol, k+1)
		copy(rcol, col[:k+1])
		ws.R = append(ws.R[:k], rcol)

		// Rotate (z[k], 0) by the same matrix applyGivens applies.
		zk1 := f.Mul(sk, ws.z[k])
		ws.z[k] = f.Scale(ck, ws.z[k])
		ws.z = append(ws.z, zk1)
		ws.k = k + 1

		resNorm := f.Abs(zk1)
		niter++
		ws.Stats.record(opts.History, resNorm)
		if opts.Verbose > 0 && niter%opts.Verbose == 0 {
			log.Info().Int("iter", niter).Float64("resid", f.RToFloat64(resNorm)).Msg("gmres")
		}

		converged := f.RCmp(resNorm, f.RAdd(opts.Atol, f.RMul(opts.Rtol, rNorm0))) <= 0
		reachedMemory := opts.Restart && ws.k >= opts.Memory
		itmaxHit := niter >= opts.ItMax
		callbackHit := opts.Callback != nil && opts.Callback(ws)

		if !(breakdown || converged || reachedMemory || itmaxHit || callbackHit) {
			continue
		}

		y, inconsistent := ws.backSolve(ws.k)
		if inconsistent {
			ws.Stats.Inconsistent = true
		}

		xr := ws.xr
		for i := range xr {
			xr[i] = f.Zero()
		}
		for i := 0; i < ws.k; i++ {
			kernel.Axpy(f, n, y[i], ws.V[i], xr)
		}
		if opts.N != nil {
			if err := applyPrecond[T, FC](opts.N, ws.tmp, xr); err != nil {
				return errors.Wrap(err, "krylov: gmres: applying right preconditioner to correction")
			}
			copy(xr, ws.tmp)
		}
		kernel.AxpyReal(f, n, f.ROne(), xr, ws.x)

		if opts.Restart && !(converged || breakdown || itmaxHit || callbackHit) {
			// xr's contribution is already folded into ws.x above, so its
			// buffer is free to reuse for the restart residual.
			r := xr
			if err := A.Apply(r, ws.x); err != nil {
				return errors.Wrap(err, "krylov: gmres: applying operator to restart residual")
			}
			kernel.ScalReal(f, n, f.RNeg(f.ROne()), r)
			kernel.AxpyReal(f, n, f.ROne(), rhs, r)
			if err := applyPrecond[T, FC](opts.M, ws.q, r); err != nil {
				return errors.Wrap(err, "krylov: gmres: applying left preconditioner to restart residual")
			}
			newRNorm := kernel.Nrm2(f, n, ws.q)
			if f.RCmp(newRNorm, f.RZero()) == 0 {
				status = StatusSolved
				break
			}
			ws.resetBasis(newRNorm)
			continue
		}

		switch {
		case callbackHit:
			status = StatusUserRequestedExit
		case itmaxHit:
			status = StatusIterationLimit
		case ws.Stats.Inconsistent:
			status = StatusLeastSquares
		default:
			status = StatusSolved
		}
	}

	ws.Stats.NIter = niter
	ws.Stats.Solved = status == StatusSolved
	ws.Stats.Status = status

	if ws.warm {
		kernel.AxpyReal(f, n, f.ROne(), ws.dx, ws.x)
	}
	return nil
}
