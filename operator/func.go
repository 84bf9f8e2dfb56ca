// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

// Func adapts plain functions into an Operator, the same way
// http.HandlerFunc adapts a function into an http.Handler. It is the
// usual way to hand a sparse-matrix multiply, a stencil, or any other
// operator-vector product to a solver without defining a named type.
//
// A Func with only ApplyFunc set is a working Operator. Func always has
// the methods of AdjointApplier, TransposeApplier and DivisionSolver;
// each calls AdjointFunc, TransposeFunc or SolveFunc respectively and
// returns ErrNotImplemented when that field is nil.
type Func[T, FC any] struct {
	M, N int

	Sym, Herm, Div bool

	ApplyFunc     func(y, x []FC) error
	AdjointFunc   func(y, x []FC) error
	TransposeFunc func(y, x []FC) error
	SolveFunc     func(y, x []FC) error
}

var (
	_ Operator[float64, float64]         = Func[float64, float64]{}
	_ AdjointApplier[float64, complex128] = Func[float64, complex128]{}
	_ TransposeApplier[float64, float64]  = Func[float64, float64]{}
	_ DivisionSolver[float64, float64]    = Func[float64, float64]{}
)

func (f Func[T, FC]) Rows() int          { return f.M }
func (f Func[T, FC]) Cols() int          { return f.N }
func (f Func[T, FC]) Symmetric() bool    { return f.Sym }
func (f Func[T, FC]) Hermitian() bool    { return f.Herm }
func (f Func[T, FC]) UsesDivision() bool { return f.Div }

func (f Func[T, FC]) Apply(y, x []FC) error {
	if f.ApplyFunc == nil {
		return ErrNotImplemented
	}
	return f.ApplyFunc(y, x)
}

func (f Func[T, FC]) ApplyAdjoint(y, x []FC) error {
	if f.AdjointFunc == nil {
		return ErrNotImplemented
	}
	return f.AdjointFunc(y, x)
}

func (f Func[T, FC]) ApplyTranspose(y, x []FC) error {
	if f.TransposeFunc == nil {
		return ErrNotImplemented
	}
	return f.TransposeFunc(y, x)
}

func (f Func[T, FC]) Solve(y, x []FC) error {
	if f.SolveFunc == nil {
		return ErrNotImplemented
	}
	return f.SolveFunc(y, x)
}
