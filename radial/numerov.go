package radial

import (
	"fmt"
	"math"
)

// DefaultStep is the grid spacing in the scaled coordinate x = √r.
const DefaultStep = 0.005

const (
	seedAmplitude = 1e-10 // value at the outer boundary; the inward solution grows from here
	rescaleAbove  = 1e100 // renormalise the partial solution before it can overflow
	sCheckRadius  = 0.05  // L=0 has no inner turning point; watch for divergence inside this radius
)

// NumerovOption configures a Numerov integrator.
type NumerovOption func(*Numerov)

// WithStep sets the grid spacing in x = √r. Panics when h is not a positive finite number.
func WithStep(h float64) NumerovOption {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		panic("radial: WithStep: step must be finite and > 0")
	}

	return func(n *Numerov) { n.step = h }
}

// Numerov computes radial overlaps by integrating hydrogenic radial
// wavefunctions with effective principal quantum number n_eff.
//
// The radial equation for P(r) = r·R(r) with energy E = −1/(2n²) becomes,
// after r = x² and P = x^{1/2}·Y,
//
//	Y'' = g(x)·Y,  g(x) = (2L+½)(2L+3/2)/x² − 8 + 4x²/n²
//
// which is integrated inward from r = 2n(n+15) with the Numerov recurrence
// on a uniform x grid. Every wavefunction shares the grid x_k = k·h, so two
// states overlap on the intersection of their index ranges.
//
// Numerov holds no mutable state and is safe for concurrent use.
type Numerov struct {
	step float64
}

var _ Overlap = (*Numerov)(nil)

// NewNumerov returns an integrator with DefaultStep unless overridden.
func NewNumerov(opts ...NumerovOption) *Numerov {
	n := &Numerov{step: DefaultStep}
	for _, fn := range opts {
		fn(n)
	}

	return n
}

// Step returns the grid spacing in x = √r.
func (nm *Numerov) Step() float64 { return nm.step }

// wavefunction holds a normalised solution Y on grid points k ∈ [kStart, kStart+len(y)).
type wavefunction struct {
	kStart int
	y      []float64
}

// Overlap returns ∫ P₁ P₂ rᵖ dr, or NaN when either state is invalid.
func (nm *Numerov) Overlap(n1 float64, l1 int, n2 float64, l2 int, p float64) float64 {
	v, err := nm.OverlapE(n1, l1, n2, l2, p)
	if err != nil {
		return math.NaN()
	}

	return v
}

// OverlapE is Overlap with an explicit error for invalid states.
//
// Implementation:
//   - Stage 1: integrate both wavefunctions on the shared grid.
//   - Stage 2: sum 2·x^{2+2p}·Y₁·Y₂·h over the common index range
//     (dr = 2x dx and P₁P₂ = x·Y₁Y₂).
//
// Complexity: O((n1² + n2²)/h).
func (nm *Numerov) OverlapE(n1 float64, l1 int, n2 float64, l2 int, p float64) (float64, error) {
	w1, err := nm.wavefunction(n1, l1)
	if err != nil {
		return 0, err
	}
	w2, err := nm.wavefunction(n2, l2)
	if err != nil {
		return 0, err
	}

	lo := max(w1.kStart, w2.kStart)
	hi := min(w1.kStart+len(w1.y), w2.kStart+len(w2.y)) // exclusive
	h := nm.step
	var sum, x float64
	for k := lo; k < hi; k++ {
		x = float64(k) * h
		sum += 2 * math.Pow(x, 2+2*p) * w1.y[k-w1.kStart] * w2.y[k-w2.kStart]
	}

	return sum * h, nil
}

// wavefunction integrates and normalises Y for (nEff, l).
//
// Implementation:
//   - Stage 1: validate the state and place the outer boundary at r = 2n(n+15).
//   - Stage 2: seed Y(x_out+h) = 0, Y(x_out) = seedAmplitude and recurse inward.
//   - Stage 3: inside the inner turning point (or sCheckRadius for L=0) stop as
//     soon as |Y| grows toward the origin; that growth is the irregular solution.
//   - Stage 4: normalise so that ∫ P² dr = ∫ 2x²Y² dx = 1.
func (nm *Numerov) wavefunction(nEff float64, l int) (wavefunction, error) {
	ll := float64(l * (l + 1))
	if math.IsNaN(nEff) || nEff <= 0 || l < 0 || nEff*nEff < ll {
		return wavefunction{}, fmt.Errorf("n_eff=%g L=%d: %w", nEff, l, ErrInvalidState)
	}

	h := nm.step
	rOut := 2 * nEff * (nEff + 15)
	kOut := int(math.Ceil(math.Sqrt(rOut) / h))

	rCheck := nEff*nEff - nEff*math.Sqrt(nEff*nEff-ll) // inner classical turning point
	if l == 0 {
		rCheck = sCheckRadius
	}
	xCheck := math.Sqrt(rCheck)

	lTerm := (2*float64(l) + 0.5) * (2*float64(l) + 1.5)
	invN2 := 1 / (nEff * nEff)
	g := func(x float64) float64 { return lTerm/(x*x) - 8 + 4*x*x*invN2 }
	c := h * h / 12

	y := make([]float64, kOut+2)
	y[kOut] = seedAmplitude
	kStart := 1
	var xm, x0, xp, next float64
	for k := kOut; k > 1; k-- {
		xm, x0, xp = float64(k-1)*h, float64(k)*h, float64(k+1)*h
		next = (2*(1+5*c*g(x0))*y[k] - (1-c*g(xp))*y[k+1]) / (1 - c*g(xm))
		if xm < xCheck && math.Abs(next) > math.Abs(y[k]) {
			kStart = k
			break
		}
		y[k-1] = next
		if math.Abs(next) > rescaleAbove {
			for i := k - 1; i <= kOut; i++ {
				y[i] /= rescaleAbove
			}
		}
	}

	y = y[kStart : kOut+1]
	var norm, x float64
	for i, v := range y {
		x = float64(kStart+i) * h
		norm += 2 * x * x * v * v
	}
	norm = math.Sqrt(norm * h)
	for i := range y {
		y[i] /= norm
	}

	return wavefunction{kStart: kStart, y: y}, nil
}
