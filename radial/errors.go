package radial

import "errors"

var (
	// ErrInvalidState is returned when n_eff or L cannot describe a bound state
	// (n_eff ≤ 0, L < 0 or n_eff² < L(L+1)).
	ErrInvalidState = errors.New("radial: invalid quantum numbers")

	// ErrInvalidSize is returned when a memo is created with a non-positive capacity.
	ErrInvalidSize = errors.New("radial: cache size must be > 0")
)
