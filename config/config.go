// Package config loads the hsml run configuration: a YAML file, an optional
// .env file, and HSML_* environment overrides, applied in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hsml/interaction"
	"github.com/katalvlaran/hsml/logging"
	"github.com/katalvlaran/hsml/quantum"
	"github.com/katalvlaran/hsml/radial"
	"github.com/katalvlaran/hsml/store"
)

// ErrInvalid is returned when the merged configuration is unusable.
var ErrInvalid = errors.New("config: invalid configuration")

// Radial configures the Numerov integrator and its memo.
type Radial struct {
	Step     float64 `yaml:"step"`
	MemoSize int     `yaml:"memo_size"`
}

// Config is a complete hsml run.
type Config struct {
	Basis          quantum.Params     `yaml:"basis"`
	QuantumDefects map[int]float64    `yaml:"quantum_defects"`
	Kinds          []interaction.Kind `yaml:"kinds"`
	Interaction    interaction.Config `yaml:"interaction"`
	Radial         Radial             `yaml:"radial"`
	Store          store.Config       `yaml:"store"`
	Log            logging.Options    `yaml:"log"`
	MetricsFile    string             `yaml:"metrics_file"` // Prometheus textfile; empty disables
	Spectrum       bool               `yaml:"spectrum"`     // diagonalize and report eigenvalue range
}

// Default returns a run over n=20..25, L ≤ 3 computing both interactions.
func Default() Config {
	return Config{
		Basis:       quantum.Params{NMin: 20, NMax: 25, LMax: 3, S: 0.5},
		Kinds:       []interaction.Kind{interaction.Stark, interaction.Zeeman},
		Interaction: interaction.DefaultConfig(),
		Radial:      Radial{Step: radial.DefaultStep, MemoSize: radial.DefaultMemoSize},
		Store:       store.Config{Driver: store.DriverFilesystem},
		Log:         logging.DefaultOptions(),
	}
}

// Load merges Default, the YAML file at path (skipped when empty), the
// dotenv file at envFile (skipped when missing) and the process environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if envFile != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if cfg.Store.Driver == store.DriverFilesystem && cfg.Store.Root == "" {
		cfg.Store.Root = cfg.Interaction.MatricesDir
	}

	return cfg, cfg.Validate()
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if err := c.Basis.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Interaction.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Kinds) == 0 {
		return fmt.Errorf("%w: no interaction kinds", ErrInvalid)
	}
	if !(c.Radial.Step > 0) {
		return fmt.Errorf("%w: radial step %v", ErrInvalid, c.Radial.Step)
	}
	if c.Radial.MemoSize <= 0 {
		return fmt.Errorf("%w: radial memo_size %d", ErrInvalid, c.Radial.MemoSize)
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Interaction.MatricesDir = envOr("HSML_MATRICES_DIR", c.Interaction.MatricesDir)
	c.Store.Driver = store.Driver(envOr("HSML_STORE_DRIVER", string(c.Store.Driver)))
	c.Store.Root = envOr("HSML_STORE_ROOT", c.Store.Root)
	c.Store.S3.Region = envOr("HSML_S3_REGION", c.Store.S3.Region)
	c.Store.S3.Bucket = envOr("HSML_S3_BUCKET", c.Store.S3.Bucket)
	c.Store.S3.Prefix = envOr("HSML_S3_PREFIX", c.Store.S3.Prefix)
	c.Store.S3.Endpoint = envOr("HSML_S3_ENDPOINT", c.Store.S3.Endpoint)
	c.Store.S3.AccessKeyID = envOr("HSML_S3_ACCESS_KEY_ID", c.Store.S3.AccessKeyID)
	c.Store.S3.SecretAccessKey = envOr("HSML_S3_SECRET_ACCESS_KEY", c.Store.S3.SecretAccessKey)
	c.Log.Level = envOr("HSML_LOG_LEVEL", c.Log.Level)
	c.Log.File = envOr("HSML_LOG_FILE", c.Log.File)
	c.MetricsFile = envOr("HSML_METRICS_FILE", c.MetricsFile)

	var err error
	if c.Store.S3.PathStyle, err = envBool("HSML_S3_PATH_STYLE", c.Store.S3.PathStyle); err != nil {
		return err
	}
	if c.Interaction.Workers, err = envInt("HSML_WORKERS", c.Interaction.Workers); err != nil {
		return err
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
	}

	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
	}

	return b, nil
}
