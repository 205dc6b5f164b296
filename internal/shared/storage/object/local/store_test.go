package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docreview-backend/internal/shared/storage/object"
)

func TestSaveWritesUnderRecordDirectory(t *testing.T) {
	store := New(t.TempDir())

	storedPath, size, err := store.Save(context.Background(), 7, "Jan Invoice.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if storedPath != "7/Jan_Invoice.pdf" {
		t.Fatalf("expected stored path 7/Jan_Invoice.pdf, got %q", storedPath)
	}
	if size != int64(len("pdf bytes")) {
		t.Fatalf("expected size %d, got %d", len("pdf bytes"), size)
	}

	rc, err := store.Open(context.Background(), storedPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("expected round-trip content, got %q", data)
	}
}

func TestSaveStripsPathComponents(t *testing.T) {
	base := t.TempDir()
	store := New(base)

	storedPath, _, err := store.Save(context.Background(), 1, "../../escape.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if storedPath != "1/escape.txt" {
		t.Fatalf("expected stored path 1/escape.txt, got %q", storedPath)
	}
	if _, err := os.Stat(filepath.Join(base, "1", "escape.txt")); err != nil {
		t.Fatalf("expected file inside root: %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	for _, p := range []string{"../secret", "..", "/etc/passwd", "1/../../secret"} {
		if _, err := store.Open(context.Background(), p); !errors.Is(err, object.ErrPathTraversal) {
			t.Errorf("Open(%q): expected ErrPathTraversal, got %v", p, err)
		}
	}
}

func TestReadRangeReturnsBoundedBytes(t *testing.T) {
	store := New(t.TempDir())

	content := "0123456789abcdef"
	storedPath, _, err := store.Save(context.Background(), 2, "data.bin", strings.NewReader(content))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, err := store.ReadRange(context.Background(), storedPath, 4, 6)
	if err != nil {
		t.Fatalf("read range: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "456789" {
		t.Fatalf("expected bytes 456789, got %q", data)
	}
}

func TestExists(t *testing.T) {
	store := New(t.TempDir())

	storedPath, _, err := store.Save(context.Background(), 3, "a.txt", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !store.Exists(context.Background(), storedPath) {
		t.Fatalf("expected stored path to exist")
	}
	if store.Exists(context.Background(), "3/missing.txt") {
		t.Fatalf("expected missing path to not exist")
	}
	if store.Exists(context.Background(), "../outside") {
		t.Fatalf("expected traversal path to report non-existence")
	}
}

func TestSizeMatchesStoredBytes(t *testing.T) {
	store := New(t.TempDir())

	storedPath, _, err := store.Save(context.Background(), 4, "n.txt", strings.NewReader("twelve bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	size, err := store.Size(context.Background(), storedPath)
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != 12 {
		t.Fatalf("expected size 12, got %d", size)
	}
}
