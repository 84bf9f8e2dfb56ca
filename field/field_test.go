// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat64Arithmetic(t *testing.T) {
	f := Float64{}
	assert.Equal(t, 5.0, f.Add(2, 3))
	assert.Equal(t, 6.0, f.Mul(2, 3))
	assert.Equal(t, 2.0, f.Abs(-2))
	assert.Equal(t, 3.0, f.RSqrt(9))
	assert.Equal(t, -1, f.RCmp(1, 2))
}

func TestComplex128Arithmetic(t *testing.T) {
	f := Complex128{}
	a := complex(3, 4)
	assert.InDelta(t, 5.0, f.Abs(a), 1e-12)
	assert.Equal(t, complex(3, -4), f.Conj(a))
	assert.Equal(t, 3.0, f.RealPart(a))
	assert.Equal(t, complex(6, 8), f.Scale(2, a))
}

func TestComplex64Arithmetic(t *testing.T) {
	f := Complex64{}
	a := complex64(complex(3, 4))
	assert.InDelta(t, float32(5.0), f.Abs(a), 1e-5)
}

func TestBigFloatArithmetic(t *testing.T) {
	f := NewBigFloat(128)
	a := f.RFromFloat64(2)
	b := f.RFromFloat64(3)
	sum := f.Add(a, b)
	assert.Equal(t, 0, sum.Cmp(big.NewFloat(5)))

	nine := f.RFromFloat64(9)
	root := f.RSqrt(nine)
	assert.InDelta(t, 3.0, f.RToFloat64(root), 1e-9)

	assert.True(t, f.RCmp(a, b) < 0)
}

func TestNewReal(t *testing.T) {
	f64 := NewReal[float64]()
	assert.Equal(t, 4.0, f64.Add(1, 3))

	f32 := NewReal[float32]()
	assert.Equal(t, float32(4), f32.Add(1, 3))
}
