// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

// Identity is the n×n identity operator. Solvers use it internally as
// the implicit default whenever a caller leaves a preconditioner nil;
// most callers never need to construct one directly.
type Identity[T, FC any] struct {
	N int
}

var _ Operator[float64, float64] = Identity[float64, float64]{}

func (id Identity[T, FC]) Rows() int          { return id.N }
func (id Identity[T, FC]) Cols() int          { return id.N }
func (id Identity[T, FC]) Symmetric() bool    { return true }
func (id Identity[T, FC]) Hermitian() bool    { return true }
func (id Identity[T, FC]) UsesDivision() bool { return false }

func (id Identity[T, FC]) Apply(y, x []FC) error {
	copy(y, x)
	return nil
}

func (id Identity[T, FC]) ApplyAdjoint(y, x []FC) error {
	copy(y, x)
	return nil
}

func (id Identity[T, FC]) ApplyTranspose(y, x []FC) error {
	copy(y, x)
	return nil
}
