// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import "github.com/krylov-go/krylov/operator"

// applyPrecond writes into y the result of applying the preconditioner op
// to x, in the usual preconditioning sense (y takes the role that M⁻¹·x
// would in the unpreconditioned formulas). A nil op is the identity. An op
// that reports UsesDivision is driven through its DivisionSolver.Solve
// method instead of Apply; both are expected to produce the same y for the
// same x, the flag only selects which method the caller's operator finds
// cheaper to implement.
func applyPrecond[T, FC any](op operator.Operator[T, FC], y, x []FC) error {
	if op == nil {
		op = operator.Identity[T, FC]{N: len(x)}
	}
	if op.UsesDivision() {
		if solver, ok := op.(operator.DivisionSolver[T, FC]); ok {
			return solver.Solve(y, x)
		}
	}
	return op.Apply(y, x)
}
