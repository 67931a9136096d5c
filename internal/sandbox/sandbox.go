// Package sandbox keeps destructive filesystem operations inside the project root.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidatePath checks if targetPath is safely within projectRoot.
// Relative paths are taken relative to projectRoot. It resolves symlinks,
// normalizes paths, and verifies containment.
// Returns the resolved absolute path or an error.
func ValidatePath(projectRoot, targetPath string) (string, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("resolving project root: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving project root symlinks: %w", err)
	}

	candidate := targetPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(realRoot, targetPath)
	}
	candidate = filepath.Clean(candidate)

	// The path may not exist yet, so resolve as much as we can.
	resolved, err := resolveExistingPath(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving target path: %w", err)
	}

	// Trailing separator avoids prefix matching "projectroot2" for "projectroot".
	rootPrefix := realRoot + string(filepath.Separator)
	if resolved != realRoot && !strings.HasPrefix(resolved, rootPrefix) {
		return "", fmt.Errorf("path '%s' resolves to '%s' which is outside the project root '%s'", targetPath, resolved, realRoot)
	}

	return resolved, nil
}

// resolveExistingPath resolves symlinks for the longest existing prefix of the path,
// then appends the non-existing suffix. This handles paths that don't fully exist yet.
func resolveExistingPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if dir == path {
		return path, nil
	}

	resolvedDir, err := resolveExistingPath(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(resolvedDir, base), nil
}

// SafeRemoveAll removes a directory tree inside the project root. The root
// itself is never removed. Removing a path that does not exist is not an
// error; the returned bool reports whether anything was there.
func SafeRemoveAll(projectRoot, relPath string) (bool, error) {
	resolved, err := ValidatePath(projectRoot, relPath)
	if err != nil {
		return false, err
	}

	realRoot, err := ValidatePath(projectRoot, ".")
	if err != nil {
		return false, err
	}
	if resolved == realRoot {
		return false, fmt.Errorf("refusing to remove the project root '%s'", realRoot)
	}

	if _, err := os.Lstat(resolved); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(resolved); err != nil {
		return false, fmt.Errorf("removing %s: %w", resolved, err)
	}
	return true, nil
}

// SafeMkdirAll creates directories within the sandbox and returns the resolved path.
func SafeMkdirAll(projectRoot, relPath string, perm os.FileMode) (string, error) {
	resolved, err := ValidatePath(projectRoot, relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(resolved, perm); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", resolved, err)
	}
	return resolved, nil
}
