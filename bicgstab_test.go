// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krylov-go/krylov/field"
	"github.com/krylov-go/krylov/operator"
)

// nonsymmetricOperator builds a small, strictly diagonally dominant but
// non-symmetric tridiagonal operator: BiCGStab's usual target, unlike
// CG-Lanczos's Hermitian-only contract.
func nonsymmetricOperator(n int) operator.Func[float64, float64] {
	return operator.Func[float64, float64]{
		M: n, N: n,
		ApplyFunc: func(y, x []float64) error {
			for i := 0; i < n; i++ {
				v := 4 * x[i]
				if i > 0 {
					v += -1 * x[i-1]
				}
				if i < n-1 {
					v += -2 * x[i+1]
				}
				y[i] = v
			}
			return nil
		},
	}
}

func TestBiCGStabConverges(t *testing.T) {
	const n = 8
	f := field.Float64{}
	A := nonsymmetricOperator(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	ws, err := BiCGStab[float64, float64](f, A, b, BiCGStabOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.True(t, ws.Stats.Solved)
	assert.Equal(t, StatusSolved, ws.Stats.Status)

	r := make([]float64, n)
	assert.NoError(t, A.Apply(r, ws.X()))
	for i := range r {
		assert.InDelta(t, b[i], r[i], 1e-6)
	}
}

func TestBiCGStabZeroResidual(t *testing.T) {
	f := field.Float64{}
	A := nonsymmetricOperator(4)
	b := make([]float64, 4)

	ws, err := BiCGStab[float64, float64](f, A, b, BiCGStabOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.Equal(t, StatusZeroResidual, ws.Stats.Status)
	assert.Equal(t, 0, ws.Stats.NIter)
}

func TestBiCGStabWarmStart(t *testing.T) {
	const n = 6
	f := field.Float64{}
	A := nonsymmetricOperator(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	cold, err := BiCGStab[float64, float64](f, A, b, BiCGStabOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.True(t, cold.Stats.Solved)

	warm, err := BiCGStabWarmStart[float64, float64](f, A, b, cold.X(), BiCGStabOptions[float64, float64]{})
	assert.NoError(t, err)
	assert.True(t, warm.Stats.Solved)
	assert.LessOrEqual(t, warm.Stats.NIter, 1)
	for i := range cold.X() {
		assert.InDelta(t, cold.X()[i], warm.X()[i], 1e-6)
	}
}

func TestBiCGStabPreconditioned(t *testing.T) {
	const n = 10
	f := field.Float64{}
	A := nonsymmetricOperator(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	jacobi := operator.Func[float64, float64]{
		M: n, N: n, Div: true,
		SolveFunc: func(y, x []float64) error {
			for i := range x {
				y[i] = x[i] / 4
			}
			return nil
		},
	}

	ws, err := BiCGStab[float64, float64](f, A, b, BiCGStabOptions[float64, float64]{M: jacobi})
	assert.NoError(t, err)
	assert.True(t, ws.Stats.Solved)

	r := make([]float64, n)
	assert.NoError(t, A.Apply(r, ws.X()))
	for i := range r {
		assert.InDelta(t, b[i], r[i], 1e-6)
	}
}
