// Package quantum models the basis of Rydberg-atom states over which
// interaction matrices are built.
//
// A State is labelled by the principal quantum number n, the effective
// principal quantum number n_eff (n minus the quantum defect of its orbital
// angular momentum), the orbital angular momentum L and its projection ML.
// A Basis is an ordered, duplicate-free sequence of States together with the
// Params it was generated from; the order defines matrix row/column indices.
//
//	b, err := quantum.NewBasis(quantum.Params{NMin: 20, NMax: 22, LMax: 3, MLMax: quantum.Int(1)},
//	    quantum.WithQuantumDefects(map[int]float64{0: 1.35, 1: 0.86}))
package quantum
