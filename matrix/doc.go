// Package matrix provides the dense float64 storage used for interaction
// matrices.
//
// The matrix package provides:
//
//   - Dense, a row-major Matrix with bounds-checked At/Set and an optional
//     finite-only numeric policy.
//   - SetSymmetric for mirrored writes of the upper triangle.
//   - Validators (ValidateSquare, ValidateSymmetric) and AllClose for
//     tolerance-based comparisons in tests and cache checks.
//   - EigenSym, a cyclic Jacobi eigensolver for symmetric matrices.
//   - Blocks, the connected components of the off-diagonal coupling graph.
//
// Interaction matrices are small enough (N ≲ 10⁴) that a flat O(N²) buffer
// is the simplest and fastest representation; no sparse formats are offered.
package matrix
