package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage writes uploaded files somewhere retrievable by a public URL.
type Storage interface {
	Save(filename string, data []byte) (storagePath string, url string, err error)
	Remove(storagePath string) error
}

// LocalStorage keeps uploads on the local filesystem under a base directory
// and serves them from a public base URL.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage builds a disk-backed storage rooted at baseDir.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", baseDir, err)
	}
	return &LocalStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) Save(filename string, data []byte) (string, string, error) {
	clean := filepath.Base(filename)
	fullpath := filepath.Join(s.baseDir, clean)
	if err := os.WriteFile(fullpath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write upload %q: %w", fullpath, err)
	}
	return fullpath, s.baseURL + "/" + clean, nil
}

func (s *LocalStorage) Remove(storagePath string) error {
	if storagePath == "" {
		return nil
	}
	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload %q: %w", storagePath, err)
	}
	return nil
}
