package object

import (
	"context"
	"errors"
	"io"
)

// ErrPathTraversal is returned when a stored path would escape the upload root.
var ErrPathTraversal = errors.New("stored path escapes upload root")

// Store defines the contract for saving and retrieving uploaded document bytes.
// Stored paths are relative to the store root and always use forward slashes.
type Store interface {
	// Save writes the reader under a directory scoped to the record ID and
	// returns the relative stored path.
	Save(ctx context.Context, recordID int64, fileName string, r io.Reader) (storedPath string, size int64, err error)
	// Open opens a stored object for reading from the beginning.
	Open(ctx context.Context, storedPath string) (io.ReadCloser, error)
	// ReadRange opens a bounded reader over [offset, offset+length).
	ReadRange(ctx context.Context, storedPath string, offset, length int64) (io.ReadCloser, error)
	// Size reports the byte size of a stored object.
	Size(ctx context.Context, storedPath string) (int64, error)
	// Exists reports whether the stored path resolves to an existing object.
	// Any resolution failure is treated as non-existence.
	Exists(ctx context.Context, storedPath string) bool
}
