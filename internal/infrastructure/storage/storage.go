package storage

import (
	"context"
	"io"
)

// Store persists uploaded audio objects
type Store interface {
	// Save writes the object and returns the stored path
	Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)

	// Open reads a stored object back
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)

	// Delete removes a stored object
	Delete(ctx context.Context, objectName string) error
}
