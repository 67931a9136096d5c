package fileapi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteQueryCreatesMarker(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")

	if err := WriteQuery(root); err != nil {
		t.Fatalf("WriteQuery: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, ".cmake", "api", "v1", "query", "codemodel-v2"))
	if err != nil {
		t.Fatalf("stat query file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("query file size = %d, want 0", info.Size())
	}
}

func TestWriteQueryIdempotent(t *testing.T) {
	root := t.TempDir()

	if err := WriteQuery(root); err != nil {
		t.Fatalf("first WriteQuery: %v", err)
	}
	if err := WriteQuery(root); err != nil {
		t.Fatalf("second WriteQuery: %v", err)
	}

	entries, err := os.ReadDir(QueryDir(root))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one query file, got %d", len(entries))
	}
	info, err := entries[0].Info()
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Name() != CodeModelKind || info.Size() != 0 {
		t.Errorf("unexpected query file %s (%d bytes)", entries[0].Name(), info.Size())
	}
}

func TestWriteQueryTruncatesExisting(t *testing.T) {
	root := t.TempDir()
	dir := QueryDir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, CodeModelKind), []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteQuery(root); err != nil {
		t.Fatalf("WriteQuery: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, CodeModelKind))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("query file should be empty, got %q", data)
	}
}

func TestWriteQueryFailsWhenBuildRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	if err := os.WriteFile(root, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteQuery(root); err == nil {
		t.Fatal("expected error when build root is a regular file")
	}
}
