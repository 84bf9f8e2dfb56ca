// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "math/big"

// BigFloat is the Field for real, arbitrary-precision systems: T = FC =
// *big.Float, both at the same configured precision.
//
// No third-party arbitrary-precision package appeared anywhere in the
// retrieval pack this module was built from, so BigFloat is implemented
// directly on the standard library's math/big, which is the ordinary way
// Go code gets this capability; see DESIGN.md. Unlike Float64/Complex128,
// every method here except Conj, RealPart, RCmp and RToFloat64 allocates,
// because *big.Float arithmetic is
// receiver-mutating and does not admit a zero-allocation expression in
// terms of value types — this is the one Field where that trade-off is
// unavoidable, not a shortcut taken elsewhere.
type BigFloat struct {
	// Prec is the mantissa precision, in bits, used for values returned
	// by Zero, One and RFromFloat64. Every other method that returns a
	// new value, Add/Sub/Mul/Div included, rounds it to this same
	// precision; Conj and RealPart return their argument unchanged.
	Prec uint
}

var _ Field[*big.Float, *big.Float] = BigFloat{}

func (f BigFloat) prec() uint {
	if f.Prec == 0 {
		return 128
	}
	return f.Prec
}

func (f BigFloat) Zero() *big.Float { return new(big.Float).SetPrec(f.prec()) }
func (f BigFloat) One() *big.Float  { return new(big.Float).SetPrec(f.prec()).SetInt64(1) }

func (f BigFloat) Add(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Add(a, b)
}
func (f BigFloat) Sub(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Sub(a, b)
}
func (f BigFloat) Mul(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Mul(a, b)
}
func (f BigFloat) Div(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Quo(a, b)
}
func (f BigFloat) Neg(a *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Neg(a)
}
func (f BigFloat) Conj(a *big.Float) *big.Float { return a }
func (f BigFloat) Scale(alpha, a *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Mul(alpha, a)
}
func (f BigFloat) RealPart(a *big.Float) *big.Float { return a }
func (f BigFloat) Abs(a *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Abs(a)
}

func (f BigFloat) RZero() *big.Float { return f.Zero() }
func (f BigFloat) ROne() *big.Float  { return f.One() }
func (f BigFloat) RAdd(a, b *big.Float) *big.Float { return f.Add(a, b) }
func (f BigFloat) RSub(a, b *big.Float) *big.Float { return f.Sub(a, b) }
func (f BigFloat) RMul(a, b *big.Float) *big.Float { return f.Mul(a, b) }
func (f BigFloat) RDiv(a, b *big.Float) *big.Float { return f.Div(a, b) }
func (f BigFloat) RNeg(a *big.Float) *big.Float    { return f.Neg(a) }
func (f BigFloat) RAbs(a *big.Float) *big.Float    { return f.Abs(a) }

func (f BigFloat) RSqrt(a *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.prec()).Sqrt(a)
}

func (f BigFloat) REps() *big.Float {
	// 2^-(prec-1), the usual definition of machine epsilon for a
	// mantissa of Prec bits.
	eps := new(big.Float).SetPrec(f.prec()).SetInt64(1)
	return eps.SetMantExp(eps, -int(f.prec())+1)
}

func (f BigFloat) RFromFloat64(x float64) *big.Float {
	return new(big.Float).SetPrec(f.prec()).SetFloat64(x)
}

func (f BigFloat) RToFloat64(a *big.Float) float64 {
	x, _ := a.Float64()
	return x
}

func (f BigFloat) RCmp(a, b *big.Float) int { return a.Cmp(b) }

// NewBigFloat returns the Field for arbitrary-precision real arithmetic
// at the given mantissa precision in bits. A prec of 0 uses 128 bits.
func NewBigFloat(prec uint) Field[*big.Float, *big.Float] { return BigFloat{Prec: prec} }
