package quantum

import "errors"

var (
	// ErrInvalidParams is returned when basis parameters are out of range.
	ErrInvalidParams = errors.New("quantum: invalid basis parameters")

	// ErrInvalidState is returned when quantum numbers violate |ML| ≤ L < n.
	ErrInvalidState = errors.New("quantum: invalid quantum numbers")

	// ErrEmptyBasis is returned when the parameters select no state.
	ErrEmptyBasis = errors.New("quantum: basis is empty")

	// ErrDuplicateState is returned when a basis would contain the same state twice.
	ErrDuplicateState = errors.New("quantum: duplicate state")
)
