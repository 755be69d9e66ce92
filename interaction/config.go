package interaction

import (
	"fmt"
	"math"
	"slices"
)

// Defaults mirror the behavior of an unconfigured build.
const (
	DefaultCacheMatrices = true
	DefaultLoadMatrices  = false
	DefaultSaveMatrices  = false
	DefaultMatricesDir   = "."
	DefaultFieldAngle    = 0.0
	DefaultP             = 1.0
	DefaultWorkers       = 1
	DefaultStrictDomain  = true
)

// ProgressOptions are forwarded to the Progress sink.
type ProgressOptions struct {
	Disable     bool   `yaml:"disable"`
	Description string `yaml:"description"` // default "Calculating <kind> terms"
}

// Config controls a single Build call. Obtain one from DefaultConfig and
// override fields; the zero value is not the default (CacheMatrices,
// P, DMAllow and StrictDomain differ).
type Config struct {
	// CacheMatrices reuses a matrix already held by the builder.
	CacheMatrices bool `yaml:"cache_matrices"`
	// LoadMatrices consults the cache store before computing.
	LoadMatrices bool `yaml:"load_matrices"`
	// SaveMatrices persists a freshly computed matrix.
	SaveMatrices bool `yaml:"save_matrices"`
	// MatricesDir roots the default filesystem store.
	MatricesDir string `yaml:"matrices_dir"`

	// FieldAngle is the field direction in degrees from the quantization axis (Stark only).
	FieldAngle float64 `yaml:"field_angle"`
	// P is the radial exponent passed to the radial overlap (Stark only).
	P float64 `yaml:"p"`
	// DMAllow lists the ΔM values allowed in the parallel-field branch (Stark only).
	DMAllow []int `yaml:"dm_allow"`

	// Workers bounds the goroutines assembling rows; ≤ 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// StrictDomain fails the build on a NaN/±Inf element instead of storing it.
	StrictDomain bool `yaml:"strict_domain"`

	Progress ProgressOptions `yaml:"progress"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		CacheMatrices: DefaultCacheMatrices,
		LoadMatrices:  DefaultLoadMatrices,
		SaveMatrices:  DefaultSaveMatrices,
		MatricesDir:   DefaultMatricesDir,
		FieldAngle:    DefaultFieldAngle,
		P:             DefaultP,
		DMAllow:       []int{0},
		Workers:       DefaultWorkers,
		StrictDomain:  DefaultStrictDomain,
	}
}

// Validate rejects non-finite field parameters.
func (c Config) Validate() error {
	if math.IsNaN(c.FieldAngle) || math.IsInf(c.FieldAngle, 0) {
		return fmt.Errorf("field_angle=%v: %w", c.FieldAngle, ErrInvalidConfig)
	}
	if math.IsNaN(c.P) || math.IsInf(c.P, 0) {
		return fmt.Errorf("p=%v: %w", c.P, ErrInvalidConfig)
	}

	return nil
}

// allows reports whether dM is listed in DMAllow.
func (c Config) allows(dM int) bool { return slices.Contains(c.DMAllow, dM) }
