package interaction

import (
	"github.com/katalvlaran/hsml/quantum"
	"github.com/katalvlaran/hsml/radial"
)

// StarkTerm returns ⟨s1|H_Stark|s2⟩ = AngularOverlap × radial overlap.
// Pairs outside |ΔL| = 1, |ΔM| ≤ 1 are exactly 0 and do not reach r.
func StarkTerm(s1, s2 quantum.State, cfg Config, r radial.Overlap) float64 {
	dL := s2.L - s1.L
	dM := s2.ML - s1.ML
	if abs(dL) != 1 || abs(dM) > 1 {
		return 0
	}

	return AngularOverlap(s1.L, s2.L, s1.ML, s2.ML, cfg) *
		r.Overlap(s1.NEff, s1.L, s2.NEff, s2.L, cfg.P)
}

// ZeemanTerm returns ML on the diagonal and 0 elsewhere.
func ZeemanTerm(s1, s2 quantum.State) float64 {
	if s1 == s2 {
		return float64(s1.ML)
	}

	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
