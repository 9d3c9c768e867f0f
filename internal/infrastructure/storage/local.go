package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps audio objects on the local filesystem
type LocalStore struct {
	dir string
}

// NewLocalStore creates a filesystem store rooted at dir
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the object under the store's directory
func (l *LocalStore) Save(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(l.dir, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Open reads a stored object back
func (l *LocalStore) Open(_ context.Context, objectName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.dir, objectName))
}

// Delete removes a stored object
func (l *LocalStore) Delete(_ context.Context, objectName string) error {
	return os.Remove(filepath.Join(l.dir, objectName))
}
