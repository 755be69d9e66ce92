package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem implements Store on a local directory. Keys map to relative
// file paths under the root. Writes go through a temp file and a rename so a
// failed save never leaves a truncated archive behind.
type Filesystem struct {
	root string
}

var _ Store = (*Filesystem)(nil)

// NewFilesystem returns a filesystem store rooted at root ("" means ".").
// The directory is created lazily on the first Put.
func NewFilesystem(root string) *Filesystem {
	if root == "" {
		root = "."
	}

	return &Filesystem{root: root}
}

// Root returns the configured directory.
func (f *Filesystem) Root() string { return f.root }

// Driver returns DriverFilesystem.
func (f *Filesystem) Driver() Driver { return DriverFilesystem }

// sanitizeKey ensures key doesn't escape root and forbids path traversal and absolute paths.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key: %w", ErrInvalidKey)
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("key %q contains '..': %w", key, ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") || filepath.IsAbs(key) {
		return "", fmt.Errorf("absolute key %q: %w", key, ErrInvalidKey)
	}

	return filepath.ToSlash(filepath.Clean(key)), nil
}

func (f *Filesystem) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(f.root, filepath.FromSlash(k)), nil
}

// Locate returns the file path key resolves to (or the raw key if invalid).
func (f *Filesystem) Locate(key string) string {
	p, err := f.pathFor(key)
	if err != nil {
		return key
	}

	return p
}

// Exists reports whether a regular file exists at key.
func (f *Filesystem) Exists(_ context.Context, key string) (bool, error) {
	p, err := f.pathFor(key)
	if err != nil {
		return false, err
	}
	st, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return st.Mode().IsRegular(), nil
}

// Get opens the file at key.
func (f *Filesystem) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := f.pathFor(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

// Put writes r to key atomically (temp file + rename), replacing any previous file.
func (f *Filesystem) Put(_ context.Context, key string, r io.Reader) error {
	p, err := f.pathFor(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), p)
}
