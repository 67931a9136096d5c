package sandbox

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestValidatePathWithinRoot(t *testing.T) {
	root := t.TempDir()

	resolved, err := ValidatePath(root, "subdir/file.txt")
	if err != nil {
		t.Fatalf("ValidatePath: %v", err)
	}

	realRoot, _ := filepath.EvalSymlinks(root)
	expected := filepath.Join(realRoot, "subdir/file.txt")
	if resolved != expected {
		t.Errorf("got %q, want %q", resolved, expected)
	}
}

func TestValidatePathRejectsDotDot(t *testing.T) {
	root := t.TempDir()

	_, err := ValidatePath(root, "../escape.txt")
	if err == nil {
		t.Fatal("expected error for .. escape")
	}
	if !strings.Contains(err.Error(), "outside the project root") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePathRejectsDotDotNested(t *testing.T) {
	root := t.TempDir()

	_, err := ValidatePath(root, "subdir/../../escape.txt")
	if err == nil {
		t.Fatal("expected error for nested .. escape")
	}
	if !strings.Contains(err.Error(), "outside the project root") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePathRejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test not reliable on Windows")
	}

	root := t.TempDir()
	outsideDir := t.TempDir()

	// Create a symlink inside root pointing outside.
	symlink := filepath.Join(root, "escape-link")
	if err := os.Symlink(outsideDir, symlink); err != nil {
		t.Fatalf("creating symlink: %v", err)
	}

	_, err := ValidatePath(root, "escape-link/file.txt")
	if err == nil {
		t.Fatal("expected error for symlink escape")
	}
	if !strings.Contains(err.Error(), "outside the project root") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePathAllowsInternalSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test not reliable on Windows")
	}

	root := t.TempDir()
	// Create a real target directory.
	realDir := filepath.Join(root, "real")
	if err := os.MkdirAll(realDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Create a symlink inside root pointing to another location inside root.
	symlink := filepath.Join(root, "link")
	if err := os.Symlink(realDir, symlink); err != nil {
		t.Fatal(err)
	}

	resolved, err := ValidatePath(root, "link/file.txt")
	if err != nil {
		t.Fatalf("ValidatePath should allow internal symlinks: %v", err)
	}

	realRoot, _ := filepath.EvalSymlinks(root)
	expected := filepath.Join(realRoot, "real", "file.txt")
	if resolved != expected {
		t.Errorf("got %q, want %q", resolved, expected)
	}
}

func TestValidatePathAbsoluteInside(t *testing.T) {
	root := t.TempDir()
	realRoot, _ := filepath.EvalSymlinks(root)

	resolved, err := ValidatePath(root, filepath.Join(realRoot, "build"))
	if err != nil {
		t.Fatalf("ValidatePath: %v", err)
	}
	if resolved != filepath.Join(realRoot, "build") {
		t.Errorf("got %q", resolved)
	}
}

func TestValidatePathAbsoluteOutside(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()

	_, err := ValidatePath(root, other)
	if err == nil {
		t.Fatal("expected error for absolute path outside root")
	}
}

func TestSafeRemoveAll(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "build", "CMakeFiles", "app.dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "main.o"), []byte("obj"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := SafeRemoveAll(root, "build")
	if err != nil {
		t.Fatalf("SafeRemoveAll: %v", err)
	}
	if !removed {
		t.Error("expected removed = true")
	}
	if _, err := os.Stat(filepath.Join(root, "build")); !os.IsNotExist(err) {
		t.Error("build directory should be gone")
	}
}

func TestSafeRemoveAllMissing(t *testing.T) {
	root := t.TempDir()

	removed, err := SafeRemoveAll(root, "dist")
	if err != nil {
		t.Fatalf("SafeRemoveAll: %v", err)
	}
	if removed {
		t.Error("nothing should have been removed")
	}
}

func TestSafeRemoveAllRejectsRoot(t *testing.T) {
	root := t.TempDir()

	for _, p := range []string{".", "", "sub/.."} {
		if _, err := SafeRemoveAll(root, p); err == nil {
			t.Errorf("SafeRemoveAll(%q) should refuse to remove the root", p)
		}
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root was removed: %v", err)
	}
}

func TestSafeRemoveAllRejectsEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	if _, err := SafeRemoveAll(root, outside); err == nil {
		t.Fatal("expected error for path outside root")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("outside directory was touched: %v", err)
	}
}

func TestSafeMkdirAll(t *testing.T) {
	root := t.TempDir()

	resolved, err := SafeMkdirAll(root, "build/sub", 0755)
	if err != nil {
		t.Fatalf("SafeMkdirAll: %v", err)
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s: %v", resolved, err)
	}

	if _, err := SafeMkdirAll(root, "../escape", 0755); err == nil {
		t.Error("expected error for escaping path")
	}
}
