// Package storage provides file-backed key-value persistence for user
// preferences such as shortcut customizations. Each key maps to one JSON
// file inside a base directory; writes are atomic (temp file + rename) so a
// crash never leaves a half-written preference file behind.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const filePermissions = 0644

// FileStore persists values as <key>.json files under a base directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating the directory if
// needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Get returns the value stored under key, reporting whether it exists.
func (s *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set stores value under key atomically.
func (s *FileStore) Set(key, value string) error {
	return writeAtomic(s.path(key), []byte(value))
}

// Delete removes the value stored under key. Missing keys are ignored.
func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file name, flattening separators so a key can never
// escape the base directory.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", "..", "-").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

// writeAtomic writes data to path by writing a temporary file in the same
// directory and renaming it over the target.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, "hireflux-temp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, filePermissions); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
