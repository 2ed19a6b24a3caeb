package osfilesystem

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFileSystem(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	path := filepath.Join(dir, "out", "frame.jpg")
	data := []byte("payload")

	// WriteFile creates parent directories
	if err := fs.WriteFile(path, data); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("read back %q, want %q", got, data)
	}

	exists, err := fs.Exists(path)
	if err != nil || !exists {
		t.Errorf("expected file to exist, got %t, %v", exists, err)
	}

	exists, err = fs.Exists(filepath.Join(dir, "absent"))
	if err != nil || exists {
		t.Errorf("expected file to not exist, got %t, %v", exists, err)
	}

	if err := fs.MkdirAll(filepath.Join(dir, "a", "b", "c")); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	exists, _ = fs.Exists(filepath.Join(dir, "a", "b", "c"))
	if !exists {
		t.Error("expected created directory to exist")
	}
}

func TestReadFile_Missing(t *testing.T) {
	fs := New()
	if _, err := fs.ReadFile(filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}
