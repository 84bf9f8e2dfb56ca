// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krylov-go/krylov/field"
	"github.com/krylov-go/krylov/kernel"
	"github.com/krylov-go/krylov/operator"
)

func denseOperator(rows [][]complex128) operator.Func[float64, complex128] {
	n := len(rows)
	return operator.Func[float64, complex128]{
		M: n, N: n, Herm: true,
		ApplyFunc: func(y, x []complex128) error {
			for i := 0; i < n; i++ {
				var sum complex128
				for j := 0; j < n; j++ {
					sum += rows[i][j] * x[j]
				}
				y[i] = sum
			}
			return nil
		},
	}
}

func TestGMRESComplexHermitian(t *testing.T) {
	f := field.Complex128{}
	A := denseOperator([][]complex128{
		{7, 1i, -5i},
		{-1i, 8, 5},
		{5i, 5, 10},
	})
	xExact := []complex128{1, 2 + 1i, 3 - 1i}
	b := make([]complex128, 3)
	assert.NoError(t, A.Apply(b, xExact))

	ws, err := GMRES[float64, complex128](f, A, b, GMRESOptions[float64, complex128]{})
	assert.NoError(t, err)
	assert.True(t, ws.Stats.Solved)
	assert.Equal(t, StatusSolved, ws.Stats.Status)
	for i := range xExact {
		assert.InDelta(t, real(xExact[i]), real(ws.X()[i]), 1e-7)
		assert.InDelta(t, imag(xExact[i]), imag(ws.X()[i]), 1e-7)
	}
}

func TestGMRESZeroResidual(t *testing.T) {
	f := field.Float64{}
	A := diagOperator([]float64{2, 3, 5})
	b := []float64{0, 0, 0}

	ws, err := GMRES[float64, float64](f, A, b, GMRESOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.Equal(t, StatusZeroResidual, ws.Stats.Status)
	assert.True(t, ws.Stats.Solved)
	assert.Equal(t, 0, ws.Stats.NIter)
	for _, xi := range ws.X() {
		assert.Equal(t, 0.0, xi)
	}
}

func TestGMRESRestartEquivalence(t *testing.T) {
	const n = 10
	f := field.Float64{}
	rankOne := operator.Func[float64, float64]{
		M: n, N: n,
		ApplyFunc: func(y, x []float64) error {
			copy(y, x)
			y[0] += x[n-1]
			return nil
		},
	}
	b := make([]float64, n)
	b[0] = 1

	full, err := GMRES[float64, float64](f, rankOne, b, GMRESOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.True(t, full.Stats.Solved)
	assert.LessOrEqual(t, full.Stats.NIter, 2)

	restarted, err := GMRES[float64, float64](f, rankOne, b, GMRESOptions[float64, float64]{Restart: true, Memory: 3})
	assert.NoError(t, err)
	assert.True(t, restarted.Stats.Solved)
	assert.LessOrEqual(t, restarted.Stats.NIter, 6)

	for i := 0; i < n; i++ {
		assert.InDelta(t, full.X()[i], restarted.X()[i], 1e-7)
	}
}

func tridiagOperator(n int, diag, off float64) operator.Func[float64, float64] {
	return operator.Func[float64, float64]{
		M: n, N: n, Sym: true, Herm: true,
		ApplyFunc: func(y, x []float64) error {
			for i := 0; i < n; i++ {
				v := diag * x[i]
				if i > 0 {
					v += off * x[i-1]
				}
				if i < n-1 {
					v += off * x[i+1]
				}
				y[i] = v
			}
			return nil
		},
	}
}

func TestGMRESPreconditionedConvergesFaster(t *testing.T) {
	const n = 12
	f := field.Float64{}
	A := tridiagOperator(n, 4, -1.9)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	plain, err := GMRES[float64, float64](f, A, b, GMRESOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.True(t, plain.Stats.Solved)

	jacobi := operator.Func[float64, float64]{
		M: n, N: n, Sym: true, Herm: true, Div: true,
		SolveFunc: func(y, x []float64) error {
			for i := range x {
				y[i] = x[i] / 4
			}
			return nil
		},
	}
	precond, err := GMRES[float64, float64](f, A, b, GMRESOptions[float64, float64]{M: jacobi})
	assert.NoError(t, err)
	assert.True(t, precond.Stats.Solved)

	assert.LessOrEqual(t, precond.Stats.NIter, plain.Stats.NIter)
	for i := 0; i < n; i++ {
		assert.InDelta(t, plain.X()[i], precond.X()[i], 1e-6)
	}
}

func TestGMRESWorkspaceReuse(t *testing.T) {
	f := field.Float64{}
	ws := NewGMRESWorkspace[float64, float64](f, 3)

	A1 := diagOperator([]float64{2, 3, 5})
	assert.NoError(t, ws.Solve(A1, []float64{2, 3, 5}, GMRESOptions[float64, float64]{}))
	for _, xi := range ws.X() {
		assert.InDelta(t, 1, xi, 1e-8)
	}

	A2 := diagOperator([]float64{4, 9, 16})
	assert.NoError(t, ws.Solve(A2, []float64{8, 27, 64}, GMRESOptions[float64, float64]{}))
	assert.InDelta(t, 2, ws.X()[0], 1e-8)
	assert.InDelta(t, 3, ws.X()[1], 1e-8)
	assert.InDelta(t, 4, ws.X()[2], 1e-8)
}

func TestGMRESResidualConsistency(t *testing.T) {
	f := field.Float64{}
	A := tridiagOperator(6, 3, -1)
	b := []float64{1, 2, 3, 4, 5, 6}

	ws, err := GMRES[float64, float64](f, A, b, GMRESOptions[float64, float64]{History: true})
	assert.NoError(t, err)
	assert.True(t, ws.Stats.Solved)

	r := make([]float64, 6)
	assert.NoError(t, A.Apply(r, ws.X()))
	kernel.ScalReal[float64, float64](f, 6, -1, r)
	kernel.AxpyReal[float64, float64](f, 6, 1, b, r)
	resid := kernel.Nrm2[float64, float64](f, 6, r)
	assert.Less(t, resid, 1e-6)
}
