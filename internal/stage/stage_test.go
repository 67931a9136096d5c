package stage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// sha256("hello world")
const helloHash = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func writeSource(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "src")
	if err := os.WriteFile(p, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPutCopiesAndVerifies(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "dist"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	src := writeSource(t, "hello world", 0755)

	dest, copied, err := s.Put(src, "Release/app", helloHash)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !copied {
		t.Error("expected a copy")
	}
	if dest != filepath.Join(s.Path(), "Release", "app") {
		t.Errorf("dest = %q", dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "hello world" {
		t.Fatalf("read %q, %v", data, err)
	}
	if runtime.GOOS != "windows" {
		fi, _ := os.Stat(dest)
		if fi.Mode().Perm() != 0755 {
			t.Errorf("mode = %v, want 0755", fi.Mode().Perm())
		}
	}
}

func TestPutIdempotent(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := writeSource(t, "hello world", 0644)

	if _, _, err := s.Put(src, "app", helloHash); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	_, copied, err := s.Put(src, "app", helloHash)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if copied {
		t.Error("identical content should not be copied again")
	}
}

func TestPutWrongHash(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := writeSource(t, "changed", 0644)

	if _, _, err := s.Put(src, "app", helloHash); err == nil {
		t.Fatal("expected error for hash mismatch")
	}
	if _, err := os.Stat(filepath.Join(s.Path(), "app")); !os.IsNotExist(err) {
		t.Error("mismatched content must not be staged")
	}

	entries, _ := os.ReadDir(s.Path())
	for _, e := range entries {
		t.Errorf("leftover file %s", e.Name())
	}
}

func TestPutWithoutHash(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, copied, err := s.Put(writeSource(t, "x", 0644), "x", ""); err != nil || !copied {
		t.Fatalf("Put = %v, %v", copied, err)
	}
}

func TestPutMissingSource(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = s.Put(filepath.Join(t.TempDir(), "missing"), "x", "")
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestHasAndSize(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.Has("app", helloHash) {
		t.Error("empty stager should not have app")
	}

	if _, _, err := s.Put(writeSource(t, "hello world", 0644), "app", helloHash); err != nil {
		t.Fatal(err)
	}
	if !s.Has("app", helloHash) {
		t.Error("expected app to be staged")
	}
	if s.Has("app", "0000") {
		t.Error("different hash should not match")
	}

	size, err := s.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != 11 {
		t.Errorf("size = %d, want 11", size)
	}
}
