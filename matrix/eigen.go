// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoConvergence is returned when EigenSym exhausts its sweeps.
var ErrNoConvergence = errors.New("matrix: eigen decomposition did not converge")

// DefaultEigenSweeps bounds the cyclic Jacobi sweeps of EigenSym.
const DefaultEigenSweeps = 100

// EigenSym diagonalizes a real symmetric matrix with cyclic Jacobi rotations.
// It returns the eigenvalues in ascending order and the matrix whose
// columns are the matching orthonormal eigenvectors.
//
// Implementation:
//   - Stage 1: validate square, finite and symmetric within tol.
//   - Stage 2: sweep all (p,q) pairs, annihilating A[p][q] by a plane rotation
//     and accumulating the rotations into V, until the off-diagonal Frobenius
//     norm drops to tol·‖A‖.
//   - Stage 3: sort eigenpairs by eigenvalue.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrAsymmetry, ErrNoConvergence.
// Complexity: O(n³) per sweep; typically fewer than ten sweeps. Memory O(n²).
func EigenSym(m *Dense, tol float64, maxSweeps int) ([]float64, *Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, nil, fmt.Errorf("EigenSym: %w", err)
	}
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("EigenSym: %w", ErrNaNInf)
		}
	}
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, fmt.Errorf("EigenSym: %w", err)
	}
	if maxSweeps <= 0 {
		maxSweeps = DefaultEigenSweeps
	}

	n := m.r
	a := m.RawData()
	v := make([]float64, n*n)
	for i := 0; i < n; i++ {
		v[i*n+i] = 1
	}

	var norm float64
	for _, x := range a {
		norm += x * x
	}
	threshold := math.Abs(tol) * math.Sqrt(norm)

	converged := false
	for sweep := 0; sweep < maxSweeps; sweep++ {
		if offDiagonalNorm(a, n) <= threshold {
			converged = true
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(a, v, n, p, q)
			}
		}
	}
	if !converged && offDiagonalNorm(a, n) > threshold {
		return nil, nil, fmt.Errorf("EigenSym: %d sweeps: %w", maxSweeps, ErrNoConvergence)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return a[order[x]*n+order[x]] < a[order[y]*n+order[y]] })

	values := make([]float64, n)
	vectors := &Dense{r: n, c: n, data: make([]float64, n*n), validateNaNInf: true}
	for k, col := range order {
		values[k] = a[col*n+col]
		for i := 0; i < n; i++ {
			vectors.data[i*n+k] = v[i*n+col]
		}
	}

	return values, vectors, nil
}

// rotate zeroes a[p][q] and applies the same rotation to the columns of v.
func rotate(a, v []float64, n, p, q int) {
	apq := a[p*n+q]
	if apq == 0 {
		return
	}
	app, aqq := a[p*n+p], a[q*n+q]
	theta := (aqq - app) / (2 * apq)
	t := math.Copysign(1/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
	c := 1 / math.Sqrt(t*t+1)
	s := t * c

	a[p*n+p] = app - t*apq
	a[q*n+q] = aqq + t*apq
	a[p*n+q], a[q*n+p] = 0, 0
	for r := 0; r < n; r++ {
		if r == p || r == q {
			continue
		}
		arp, arq := a[r*n+p], a[r*n+q]
		a[r*n+p] = c*arp - s*arq
		a[p*n+r] = a[r*n+p]
		a[r*n+q] = s*arp + c*arq
		a[q*n+r] = a[r*n+q]
	}
	for r := 0; r < n; r++ {
		vrp, vrq := v[r*n+p], v[r*n+q]
		v[r*n+p] = c*vrp - s*vrq
		v[r*n+q] = s*vrp + c*vrq
	}
}

func offDiagonalNorm(a []float64, n int) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += 2 * a[i*n+j] * a[i*n+j]
		}
	}

	return math.Sqrt(sum)
}
