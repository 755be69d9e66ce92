// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Blocks partitions the indices of a square matrix into coupled blocks:
// i and j share a block when a chain of off-diagonal elements with
// |m[a][b]| > tol links them. Blocks are returned in order of their
// smallest index and each block lists its indices ascending.
//
// A NaN element counts as a coupling. Symmetric input is assumed; only
// the upper triangle is consulted.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n²) time, O(n) extra space.
func Blocks(m *Dense, tol float64) ([][]int, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("Blocks: %w", err)
	}
	n := m.r
	tol = math.Abs(tol)
	coupled := func(i, j int) bool {
		if i > j {
			i, j = j, i
		}
		v := m.data[i*n+j]

		return math.IsNaN(v) || math.Abs(v) > tol
	}

	visited := make([]bool, n)
	queue := make([]int, 0, n)
	var blocks [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		// breadth-first walk from the lowest unvisited index
		visited[start] = true
		queue = append(queue[:0], start)
		block := make([]int, 0, 1)
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			block = append(block, i)
			for j := 0; j < n; j++ {
				if !visited[j] && j != i && coupled(i, j) {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}
		sortInts(block)
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// sortInts is an insertion sort; blocks are small and nearly ordered.
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}
