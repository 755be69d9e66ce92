package radial

// Overlap computes the radial matrix element ⟨n1 l1| rᵖ |n2 l2⟩.
// Implementations must satisfy Overlap(a, la, b, lb, p) == Overlap(b, lb, a, la, p)
// and be safe for concurrent use.
type Overlap interface {
	Overlap(n1 float64, l1 int, n2 float64, l2 int, p float64) float64
}

// OverlapFunc adapts a plain function to the Overlap interface.
type OverlapFunc func(n1 float64, l1 int, n2 float64, l2 int, p float64) float64

// Overlap calls f.
func (f OverlapFunc) Overlap(n1 float64, l1 int, n2 float64, l2 int, p float64) float64 {
	return f(n1, l1, n2, l2, p)
}
