package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"docreview-backend/internal/shared/storage/object"
	"docreview-backend/internal/shared/util"
)

// Store implements object.Store using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to {root}/{recordID}/{safeName} and returns the
// path relative to the root.
func (s *Store) Save(ctx context.Context, recordID int64, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	safeName := util.SanitizeFileName(fileName)
	recordDir := strconv.FormatInt(recordID, 10)

	dirPath := filepath.Join(s.baseDir, recordDir)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", 0, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(dirPath, safeName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("write body: %w", err)
	}

	return path.Join(recordDir, safeName), written, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storedPath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(storedPath)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

// ReadRange opens a bounded reader over [offset, offset+length).
func (s *Store) ReadRange(ctx context.Context, storedPath string, offset, length int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(storedPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek: %w", err)
	}
	return &boundedReadCloser{r: io.LimitReader(f, length), f: f}, nil
}

// Size reports the byte size of a stored object.
func (s *Store) Size(ctx context.Context, storedPath string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	fullPath, err := s.resolve(storedPath)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Exists reports whether the stored path resolves to an existing file.
func (s *Store) Exists(ctx context.Context, storedPath string) bool {
	fullPath, err := s.resolve(storedPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && !info.IsDir()
}

// resolve joins a relative stored path under the root, rejecting anything
// that would normalize outside it.
func (s *Store) resolve(storedPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(storedPath))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", object.ErrPathTraversal
	}
	return filepath.Join(s.baseDir, clean), nil
}

type boundedReadCloser struct {
	r io.Reader
	f *os.File
}

func (b *boundedReadCloser) Read(p []byte) (int, error) { return b.r.Read(p) }
func (b *boundedReadCloser) Close() error               { return b.f.Close() }

var _ object.Store = (*Store)(nil)
