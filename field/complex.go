// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "math/cmplx"

// Complex128 is the Field for Hermitian/general complex systems in double
// precision: T = float64, FC = complex128.
type Complex128 struct{}

var _ Field[float64, complex128] = Complex128{}

func (Complex128) Zero() complex128              { return 0 }
func (Complex128) One() complex128               { return 1 }
func (Complex128) Add(a, b complex128) complex128 { return a + b }
func (Complex128) Sub(a, b complex128) complex128 { return a - b }
func (Complex128) Mul(a, b complex128) complex128 { return a * b }
func (Complex128) Div(a, b complex128) complex128 { return a / b }
func (Complex128) Neg(a complex128) complex128    { return -a }
func (Complex128) Conj(a complex128) complex128   { return cmplx.Conj(a) }
func (Complex128) Scale(alpha float64, a complex128) complex128 { return complex(alpha, 0) * a }
func (Complex128) RealPart(a complex128) float64 { return real(a) }
func (Complex128) Abs(a complex128) float64      { return cmplx.Abs(a) }

func (Complex128) RZero() float64             { return 0 }
func (Complex128) ROne() float64              { return 1 }
func (Complex128) RAdd(a, b float64) float64  { return a + b }
func (Complex128) RSub(a, b float64) float64  { return a - b }
func (Complex128) RMul(a, b float64) float64  { return a * b }
func (Complex128) RDiv(a, b float64) float64  { return a / b }
func (Complex128) RNeg(a float64) float64     { return -a }
func (Complex128) RAbs(a float64) float64     { return Float64{}.RAbs(a) }
func (Complex128) RSqrt(a float64) float64    { return Float64{}.RSqrt(a) }
func (Complex128) REps() float64              { return Float64{}.REps() }
func (Complex128) RFromFloat64(x float64) float64 { return x }
func (Complex128) RToFloat64(a float64) float64   { return a }
func (Complex128) RCmp(a, b float64) int      { return Float64{}.RCmp(a, b) }

// Complex64 is the Field for Hermitian/general complex systems in single
// precision: T = float32, FC = complex64.
type Complex64 struct{}

var _ Field[float32, complex64] = Complex64{}

func (Complex64) Zero() complex64             { return 0 }
func (Complex64) One() complex64              { return 1 }
func (Complex64) Add(a, b complex64) complex64 { return a + b }
func (Complex64) Sub(a, b complex64) complex64 { return a - b }
func (Complex64) Mul(a, b complex64) complex64 { return a * b }
func (Complex64) Div(a, b complex64) complex64 { return a / b }
func (Complex64) Neg(a complex64) complex64    { return -a }
func (Complex64) Conj(a complex64) complex64   { return complex64(cmplx.Conj(complex128(a))) }
func (Complex64) Scale(alpha float32, a complex64) complex64 {
	return complex64(complex(float64(alpha), 0)) * a
}
func (Complex64) RealPart(a complex64) float32 { return real(a) }
func (Complex64) Abs(a complex64) float32      { return float32(cmplx.Abs(complex128(a))) }

func (Complex64) RZero() float32             { return 0 }
func (Complex64) ROne() float32              { return 1 }
func (Complex64) RAdd(a, b float32) float32  { return a + b }
func (Complex64) RSub(a, b float32) float32  { return a - b }
func (Complex64) RMul(a, b float32) float32  { return a * b }
func (Complex64) RDiv(a, b float32) float32  { return a / b }
func (Complex64) RNeg(a float32) float32     { return -a }
func (Complex64) RAbs(a float32) float32     { return Float32{}.RAbs(a) }
func (Complex64) RSqrt(a float32) float32    { return Float32{}.RSqrt(a) }
func (Complex64) REps() float32              { return Float32{}.REps() }
func (Complex64) RFromFloat64(x float64) float32 { return float32(x) }
func (Complex64) RToFloat64(a float32) float64   { return float64(a) }
func (Complex64) RCmp(a, b float32) int      { return Float32{}.RCmp(a, b) }

// NewComplex128 returns the native Field for double-precision complex
// arithmetic. It is a function (rather than a bare value) so that it sits
// alongside NewReal/NewComplex64 in call sites that pick a Field by a
// type switch on a configuration flag.
func NewComplex128() Field[float64, complex128] { return Complex128{} }

// NewComplex64 returns the native Field for single-precision complex
// arithmetic.
func NewComplex64() Field[float32, complex64] { return Complex64{} }
