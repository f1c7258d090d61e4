package object

import (
	"context"
	"io"
)

// FileStore defines the contract for persisting uploaded files. Stored files
// are never removed by the application, even when their document row is
// deleted.
type FileStore interface {
	// Save writes the reader to storage under a generated unique name and
	// returns both the stored name and an absolute path readable on disk.
	Save(ctx context.Context, originalName string, r io.Reader) (storedName string, path string, err error)
	// Open opens a previously stored file for reading.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
}
