package quantum

import "fmt"

// State is an immutable basis state |n, L, ML⟩ with effective principal
// quantum number NEff. States compare equal with == when every field matches.
type State struct {
	N    int     // principal quantum number
	NEff float64 // effective principal quantum number (n - δ_L)
	L    int     // orbital angular momentum
	ML   int     // projection of L on the quantization axis
}

// Equal reports whether s and o carry identical quantum numbers.
func (s State) Equal(o State) bool { return s == o }

// Validate checks 0 ≤ L < N and |ML| ≤ L.
func (s State) Validate() error {
	if s.N < 1 || s.L < 0 || s.L >= s.N {
		return fmt.Errorf("%v: %w", s, ErrInvalidState)
	}
	if s.ML > s.L || s.ML < -s.L {
		return fmt.Errorf("%v: %w", s, ErrInvalidState)
	}

	return nil
}

// String renders the state as |n=…, L=…, ML=…⟩.
func (s State) String() string {
	return fmt.Sprintf("|n=%d, L=%d, ML=%d⟩", s.N, s.L, s.ML)
}
