package interaction

import "errors"

var (
	// ErrUnsupportedInteraction is returned for an interaction kind other than Stark or Zeeman.
	ErrUnsupportedInteraction = errors.New("interaction: unsupported interaction")

	// ErrNilBasis is returned when the builder is given no basis.
	ErrNilBasis = errors.New("interaction: basis is nil")

	// ErrEmptyBasis is returned when the basis holds no state.
	ErrEmptyBasis = errors.New("interaction: basis is empty")

	// ErrNilRadial is returned when a Stark builder has no radial overlap.
	ErrNilRadial = errors.New("interaction: radial overlap is nil")

	// ErrInvalidConfig is returned for non-finite field angle or radial exponent.
	ErrInvalidConfig = errors.New("interaction: invalid configuration")

	// ErrDomain is returned in strict mode when a matrix element is NaN or ±Inf,
	// which happens for quantum numbers outside |ML| ≤ L.
	ErrDomain = errors.New("interaction: matrix element outside numeric domain")

	// ErrIO wraps cache store failures during load or save.
	ErrIO = errors.New("interaction: matrix cache i/o")

	// ErrCacheMismatch is returned when a cached matrix does not match the basis size.
	ErrCacheMismatch = errors.New("interaction: cached matrix does not match basis")
)
