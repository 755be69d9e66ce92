package interaction

import "math"

// AngularOverlap returns ⟨l1 m1| cos θ' |l2 m2⟩ for a field tilted by
// cfg.FieldAngle degrees from the quantization axis.
//
// The parallel component (weight cos²) contributes ΔM ∈ cfg.DMAllow and is
// skipped when the angle is a multiple of 180 plus 90. The perpendicular
// component (weight sin²) contributes ΔM = ±1 regardless of DMAllow and is
// skipped when the angle is a multiple of 180. Both require |ΔL| = 1.
//
// Quantum numbers with |m| > l give a negative radicand and the result is NaN.
func AngularOverlap(l1, l2, m1, m2 int, cfg Config) float64 {
	dL := l2 - l1
	dM := m2 - m1
	L, M := float64(l1), float64(m1)

	rad := cfg.FieldAngle * math.Pi / 180
	fracPara := math.Cos(rad) * math.Cos(rad)
	fracPerp := math.Sin(rad) * math.Sin(rad)
	angle := floorMod(cfg.FieldAngle, 180)

	var overlap float64
	if angle != 90 && cfg.allows(dM) {
		switch {
		case dM == 0 && dL == 1:
			overlap += fracPara * math.Sqrt(((L+1)*(L+1)-M*M)/((2*L+3)*(2*L+1)))
		case dM == 0 && dL == -1:
			overlap += fracPara * math.Sqrt((L*L-M*M)/((2*L+1)*(2*L-1)))
		case dM == 1 && dL == 1:
			overlap -= fracPara * math.Sqrt((L+M+2)*(L+M+1)/(2*(2*L+3)*(2*L+1)))
		case dM == 1 && dL == -1:
			overlap += fracPara * math.Sqrt((L-M)*(L-M-1)/(2*(2*L+1)*(2*L-1)))
		case dM == -1 && dL == 1:
			overlap += fracPara * math.Sqrt((L-M+2)*(L-M+1)/(2*(2*L+3)*(2*L+1)))
		case dM == -1 && dL == -1:
			overlap -= fracPara * math.Sqrt((L+M)*(L+M-1)/(2*(2*L+1)*(2*L-1)))
		}
	}

	if angle != 0 {
		switch {
		case dM == 1 && dL == 1:
			overlap += 0.5 * parity(m1-2*l1) * fracPerp * math.Sqrt((L+M+2)*(L+M+1)/((2*L+3)*(2*L+1)))
		case dM == 1 && dL == -1:
			overlap -= 0.5 * parity(m1-2*l1) * fracPerp * math.Sqrt((L-M)*(L-M-1)/((2*L+1)*(2*L-1)))
		case dM == -1 && dL == 1:
			overlap += 0.5 * parity(-m1+2*l1) * fracPerp * math.Sqrt((L-M+2)*(L-M+1)/((2*L+3)*(2*L+1)))
		case dM == -1 && dL == -1:
			overlap -= 0.5 * parity(-m1+2*l1) * fracPerp * math.Sqrt((L+M)*(L+M-1)/((2*L+1)*(2*L-1)))
		}
	}

	return overlap
}

// parity returns (-1)^k.
func parity(k int) float64 {
	if k%2 == 0 {
		return 1
	}

	return -1
}

// floorMod is the non-negative remainder of x/m for m > 0.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}

	return r
}
