package store

import (
	"context"
	"fmt"
)

// Config selects and configures a Store driver.
type Config struct {
	Driver Driver   `yaml:"driver"` // fs|s3|memory (default fs)
	Root   string   `yaml:"root"`   // directory root when driver=fs (default ".")
	S3     S3Config `yaml:"s3"`
}

// Open constructs the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.Root), nil
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Driver, ErrUnknownDriver)
	}
}
