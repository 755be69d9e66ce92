package interaction

import (
	"fmt"
	"strings"
)

// Kind selects the perturbation a Builder evaluates.
type Kind int

const (
	// Stark is the electric-field interaction.
	Stark Kind = iota + 1
	// Zeeman is the magnetic-field interaction.
	Zeeman
)

// String returns the lowercase name used in logs and cache keys.
func (k Kind) String() string {
	switch k {
	case Stark:
		return "stark"
	case Zeeman:
		return "zeeman"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is Stark or Zeeman.
func (k Kind) Valid() bool { return k == Stark || k == Zeeman }

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stark":
		return Stark, nil
	case "zeeman":
		return Zeeman, nil
	default:
		return 0, fmt.Errorf("%q is not recognised: %w", s, ErrUnsupportedInteraction)
	}
}

// UnmarshalText lets Kind be decoded from YAML/flags.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// MarshalText encodes Kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%v: %w", k, ErrUnsupportedInteraction)
	}

	return []byte(k.String()), nil
}
