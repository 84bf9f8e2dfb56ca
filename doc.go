// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package krylov provides iterative Krylov subspace methods for solving
large, sparse linear problems by operator-vector products alone, without
ever materialising the system matrix.

Background

A system of linear equations can be written as

 A * x = b,

where A is a given n×n matrix, b is a given n-vector (the right-hand
side), and x is an unknown n-vector. Direct methods such as the LU or QR
decomposition compute, in the absence of round-off, the exact solution
after a finite number of steps, but require O(n^3) arithmetic and O(n^2)
storage, which becomes infeasible once A is large and sparse.

Krylov methods instead build up a low-dimensional subspace

 K_k(A, r) = span{r, A r, A^2 r, ..., A^(k-1) r}

from repeated operator application and search for an approximate solution
within it, using only matrix-vector products with A (and, for some
methods, Aᴴ). This package specifies two such methods in depth:

  - CG-Lanczos, a short-recurrence method for Hermitian (or real
    symmetric) A, optionally positive definite, with a curvature monitor
    that detects indefiniteness.
  - GMRES, for general (possibly non-Hermitian) A, built from the Arnoldi
    process and an incrementally-updated Givens QR factorisation of the
    projected Hessenberg matrix, with left/right preconditioning and
    restart.

A third method, BiCGStab, is included as a worked example of a
short-recurrence method for general non-Hermitian A; the broader family
of Krylov methods (BiCG, QMR, MINRES, LSQR, and the rest of the
Templates catalogue) shares the same Operator/Field/workspace scaffolding
but is not implemented here.

Scalar genericity

The solvers, their workspaces and options, field.Field and
operator.Operator are all generic over two type parameters, a
real type T (used for norms and tolerances) and a scalar type FC (used
for vector and operator entries, real or complex over T). Arithmetic is
never performed with Go's built-in operators on T or FC directly; instead
every numeric package here takes a field.Field[T, FC] dictionary and
calls its methods. This is what lets the same CG-Lanczos and GMRES code
serve float32, float64, complex64, complex128 and arbitrary-precision
*big.Float scalars without duplication. See package field.

Operators and preconditioners

The system matrix A, and any left/right preconditioner, are represented
by the operator.Operator interface: shape, an Apply method, and optional
capabilities (ApplyAdjoint, ApplyTranspose, a division-style Solve) that a
concrete operator may additionally implement. See package operator.

Workspaces and repeat solves

Each method has a workspace type (CGLanczosWorkspace, GMRESWorkspace) that
owns every vector and scalar it reuses across iterations. A workspace may
be constructed once and solved many times — with differing right-hand
sides, or a fresh warm start — without reallocating; see the Solve/
SolveWarmStart methods on each workspace type, and the package-level
cold-start convenience functions that build a workspace automatically.

References

  - Barrett, Richard et al. (1994). Templates for the Solution of Linear
    Systems: Building Blocks for Iterative Methods (2nd ed.). Philadelphia,
    PA: SIAM. http://www.netlib.org/templates/templates.pdf
  - Saad, Yousef (2003). Iterative Methods for Sparse Linear Systems (2nd
    ed.). Philadelphia, PA: SIAM.
  - Saad, Y., and Schultz, M. (1986). GMRES: A generalized minimal
    residual algorithm for solving nonsymmetric linear systems. SIAM J.
    Sci. Stat. Comput., 7(3), 856.
  - Hestenes, M., and Stiefel, E. (1952). Methods of conjugate gradients
    for solving linear systems. J. Res. Natl. Bur. Stand., 49(6), 409.
*/
package krylov
