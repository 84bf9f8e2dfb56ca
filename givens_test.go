// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krylov-go/krylov/field"
)

func TestSymGivensReal(t *testing.T) {
	f := field.Float64{}
	cases := []struct {
		a, b float64
	}{
		{3, 4},
		{4, 3},
		{0, 5},
		{5, 0},
		{0, 0},
		{-2, 7},
		{2, -7},
	}
	for _, c := range cases {
		gotC, gotS, gotR := symGivens[float64, float64](f, c.a, c.b)

		// c^2+s^2 == 1.
		assert.InDelta(t, 1, gotC*gotC+gotS*gotS, 1e-12)
		// |r|^2 == a^2+b^2.
		assert.InDelta(t, c.a*c.a+c.b*c.b, gotR*gotR, 1e-9)
		// s*a - c*b == 0.
		assert.InDelta(t, 0, gotS*c.a-gotC*c.b, 1e-9)
		// c*a + s*b == r.
		assert.InDelta(t, gotR, gotC*c.a+gotS*c.b, 1e-9)
		// c is negative exactly when a is negative.
		if c.a < 0 {
			assert.Less(t, gotC, 0.0)
		} else {
			assert.GreaterOrEqual(t, gotC, 0.0)
		}
		// r is real and non-negative whenever a is real (always true here).
		assert.GreaterOrEqual(t, gotR, -1e-12)
	}
}

func TestSymGivensComplex(t *testing.T) {
	f := field.Complex128{}
	cases := []struct {
		a, b complex128
	}{
		{complex(3, 1), complex(4, -2)},
		{0, complex(5, 5)},
		{complex(5, 0), 0},
		{0, 0},
		{complex(1, 2), complex(1, 2)},
	}
	for _, c := range cases {
		gotC, gotS, gotR := symGivens[float64, complex128](f, c.a, c.b)

		// c^2+|s|^2 == 1.
		assert.InDelta(t, 1, gotC*gotC+cmplx.Abs(gotS)*cmplx.Abs(gotS), 1e-9)
		// |r|^2 == |a|^2+|b|^2.
		want := cmplx.Abs(c.a)*cmplx.Abs(c.a) + cmplx.Abs(c.b)*cmplx.Abs(c.b)
		assert.InDelta(t, want, cmplx.Abs(gotR)*cmplx.Abs(gotR), 1e-9)
		// s*a - c*b == 0.
		assert.InDelta(t, 0, cmplx.Abs(gotS*c.a-complex(gotC, 0)*c.b), 1e-9)
		// c*a + conj(s)*b == r.
		lhs := complex(gotC, 0)*c.a + cmplx.Conj(gotS)*c.b
		assert.InDelta(t, 0, cmplx.Abs(lhs-gotR), 1e-9)
		assert.GreaterOrEqual(t, gotC, 0.0)
	}
}

func TestSymGivensRealWhenAReal(t *testing.T) {
	// When a is real and non-negative, r must also be real and
	// non-negative, even though b is complex.
	f := field.Complex128{}
	a := complex(3, 0)
	b := complex(1, 2)
	_, _, r := symGivens[float64, complex128](f, a, b)
	assert.InDelta(t, 0, math.Abs(imag(r)), 1e-9)
	assert.GreaterOrEqual(t, real(r), 0.0)
}
