package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each blob as a file under a root directory.
type FileStore struct {
	Root string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Root: dir}
}

// ReadBytes reads the named blob. A missing file is not an error.
func (s *FileStore) ReadBytes(name string) ([]byte, bool, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, true, nil
}

// WriteBytes writes the named blob, creating parent directories as needed.
func (s *FileStore) WriteBytes(name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// resolve maps a blob name to a path under Root, rejecting traversal.
func (s *FileStore) resolve(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." || filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid blob name: %q", name)
	}
	return filepath.Join(s.Root, cleaned), nil
}
