// Package radial defines the radial-overlap collaborator consumed by the
// interaction builder, plus a reference implementation.
//
// Overlap is the narrow interface: given two states' effective principal
// quantum numbers and orbital angular momenta it returns ⟨n1 l1| rᵖ |n2 l2⟩
// in atomic units. Any implementation must be symmetric under swapping the
// two states, because interaction matrices are assembled from their upper
// triangle and mirrored.
//
// Numerov integrates the single-electron radial equation for a Coulomb
// potential in the scaled coordinate x = √r, where the Numerov recurrence is
// well conditioned across the whole Rydberg orbit. Memo wraps any Overlap
// with a bounded LRU cache so that repeated pairs (every ML sublevel of the
// same n, L pair) are integrated once.
//
// Performance:
//
//   - Numerov: O(n²/h) per wavefunction; each Overlap integrates two.
//   - Memo:    O(1) amortised per repeated pair.
package radial
