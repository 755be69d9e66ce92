package store

import (
	"context"
	"errors"
	"io"
)

// Driver identifies a concrete storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// Store is the minimal blob surface the matrix cache needs.
type Store interface {
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Get opens the blob at key. Returns an error matching ErrNotFound when missing.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Put stores r at key, replacing any previous content.
	Put(ctx context.Context, key string, r io.Reader) error
	// Locate returns a human-readable location (path or URL) of key, for logs.
	Locate(key string) string
	// Driver returns the backend identifier.
	Driver() Driver
}

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("store: blob not found")

	// ErrInvalidKey is returned for empty, absolute or traversing keys.
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrUnknownDriver is returned by Open for an unrecognised driver name.
	ErrUnknownDriver = errors.New("store: unknown driver")

	// ErrCorrupt is returned when a blob does not decode to a square matrix.
	ErrCorrupt = errors.New("store: corrupt matrix archive")
)
