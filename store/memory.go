package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/patrickmn/go-cache"
)

// Memory implements Store in process memory on top of go-cache.
// Entries never expire; values are copied on the way in and out.
type Memory struct {
	c *cache.Cache
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{c: cache.New(cache.NoExpiration, 0)}
}

// Driver returns DriverMemory.
func (m *Memory) Driver() Driver { return DriverMemory }

// Locate returns a memory:// pseudo URL.
func (m *Memory) Locate(key string) string { return "memory://" + key }

// Exists reports whether key is present.
func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.c.Get(key)

	return ok, nil
}

// Get returns a reader over a copy of the stored bytes.
func (m *Memory) Get(_ context.Context, key string) (io.ReadCloser, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	b := v.([]byte)
	cp := make([]byte, len(b))
	copy(cp, b)

	return io.NopCloser(bytes.NewReader(cp)), nil
}

// Put stores a copy of r's content at key.
func (m *Memory) Put(_ context.Context, key string, r io.Reader) error {
	if key == "" {
		return fmt.Errorf("empty key: %w", ErrInvalidKey)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.c.Set(key, b, cache.NoExpiration)

	return nil
}

// Len reports the number of stored blobs.
func (m *Memory) Len() int { return m.c.ItemCount() }
