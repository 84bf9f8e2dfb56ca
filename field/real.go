// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float64 is the Field for real systems in double precision: T = FC =
// float64.
type Float64 struct{}

var _ Field[float64, float64] = Float64{}

func (Float64) Zero() float64          { return 0 }
func (Float64) One() float64           { return 1 }
func (Float64) Add(a, b float64) float64 { return a + b }
func (Float64) Sub(a, b float64) float64 { return a - b }
func (Float64) Mul(a, b float64) float64 { return a * b }
func (Float64) Div(a, b float64) float64 { return a / b }
func (Float64) Neg(a float64) float64    { return -a }
func (Float64) Conj(a float64) float64   { return a }
func (Float64) Scale(alpha, a float64) float64 { return alpha * a }
func (Float64) RealPart(a float64) float64     { return a }
func (Float64) Abs(a float64) float64          { return math.Abs(a) }

func (Float64) RZero() float64             { return 0 }
func (Float64) ROne() float64              { return 1 }
func (Float64) RAdd(a, b float64) float64  { return a + b }
func (Float64) RSub(a, b float64) float64  { return a - b }
func (Float64) RMul(a, b float64) float64  { return a * b }
func (Float64) RDiv(a, b float64) float64  { return a / b }
func (Float64) RNeg(a float64) float64     { return -a }
func (Float64) RAbs(a float64) float64     { return math.Abs(a) }
func (Float64) RSqrt(a float64) float64    { return math.Sqrt(a) }
func (Float64) REps() float64              { return 2.220446049250313e-16 }
func (Float64) RFromFloat64(x float64) float64 { return x }
func (Float64) RToFloat64(a float64) float64   { return a }
func (Float64) RCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Float32 is the Field for real systems in single precision: T = FC =
// float32.
type Float32 struct{}

var _ Field[float32, float32] = Float32{}

func (Float32) Zero() float32            { return 0 }
func (Float32) One() float32             { return 1 }
func (Float32) Add(a, b float32) float32 { return a + b }
func (Float32) Sub(a, b float32) float32 { return a - b }
func (Float32) Mul(a, b float32) float32 { return a * b }
func (Float32) Div(a, b float32) float32 { return a / b }
func (Float32) Neg(a float32) float32    { return -a }
func (Float32) Conj(a float32) float32   { return a }
func (Float32) Scale(alpha, a float32) float32 { return alpha * a }
func (Float32) RealPart(a float32) float32     { return a }
func (Float32) Abs(a float32) float32          { return float32(math.Abs(float64(a))) }

func (Float32) RZero() float32            { return 0 }
func (Float32) ROne() float32             { return 1 }
func (Float32) RAdd(a, b float32) float32 { return a + b }
func (Float32) RSub(a, b float32) float32 { return a - b }
func (Float32) RMul(a, b float32) float32 { return a * b }
func (Float32) RDiv(a, b float32) float32 { return a / b }
func (Float32) RNeg(a float32) float32    { return -a }
func (Float32) RAbs(a float32) float32    { return float32(math.Abs(float64(a))) }
func (Float32) RSqrt(a float32) float32   { return float32(math.Sqrt(float64(a))) }
func (Float32) REps() float32             { return 1.1920929e-07 }
func (Float32) RFromFloat64(x float64) float32 { return float32(x) }
func (Float32) RToFloat64(a float32) float64   { return float64(a) }
func (Float32) RCmp(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// realFloat is the constraint satisfied by the two native real Fields;
// it lets NewReal stay generic without burdening Field itself with any
// constraint.
type realFloat interface {
	constraints.Float
}

// NewReal returns the native Field for real arithmetic in precision T,
// where T is float32 or float64. It panics for any other T; use Float32{}
// or Float64{} directly to avoid the runtime check.
func NewReal[T realFloat]() Field[T, T] {
	var z T
	switch any(z).(type) {
	case float32:
		return any(Float32{}).(Field[T, T])
	case float64:
		return any(Float64{}).(Field[T, T])
	default:
		panic("field: NewReal supports only float32 and float64")
	}
}
