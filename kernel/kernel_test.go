// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"github.com/krylov-go/krylov/field"
)

func TestAxpyReal(t *testing.T) {
	f := field.Float64{}
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	Axpy(f, 3, 2.0, x, y)
	assert.Equal(t, []float64{6, 9, 12}, y)
}

func TestAxpbyReal(t *testing.T) {
	f := field.Float64{}
	x := []float64{1, 1, 1}
	y := []float64{2, 2, 2}
	Axpby(f, 3, 2.0, x, 0.5, y)
	assert.Equal(t, []float64{3, 3, 3}, y)
}

func TestDotAndNrm2Real(t *testing.T) {
	f := field.Float64{}
	x := []float64{3, 4}
	got := Nrm2(f, 2, x)
	assert.True(t, floats.EqualWithinAbsOrRel(got, 5.0, 1e-12, 1e-12))

	d := Dot(f, 2, x, x)
	assert.Equal(t, 25.0, d)
}

func TestDotComplex(t *testing.T) {
	f := field.Complex128{}
	x := []complex128{complex(0, 1)}
	y := []complex128{complex(0, 1)}
	// conj(i) * i = (-i)*i = 1
	got := Dot(f, 1, x, y)
	assert.Equal(t, complex(1, 0), got)

	n := Nrm2(f, 1, x)
	assert.InDelta(t, 1.0, n, 1e-12)
}

func TestDotrHermitianQuadraticForm(t *testing.T) {
	f := field.Complex128{}
	x := []complex128{complex(1, 2), complex(3, -1)}
	got := Dotr(f, 2, x, x)
	assert.InDelta(t, 1*1+2*2+3*3+1*1, got, 1e-12)
}

func TestScalAndCopy(t *testing.T) {
	f := field.Float64{}
	x := []float64{1, 2, 3}
	Scal(f, 3, -1.0, x)
	assert.Equal(t, []float64{-1, -2, -3}, x)

	y := make([]float64, 3)
	Copy[float64, float64](3, x, y)
	assert.Equal(t, x, y)
}
