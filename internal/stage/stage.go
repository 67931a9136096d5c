// Package stage copies build artifacts into the output directory.
// Files are verified against their recorded SHA256 and written atomically.
package stage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stager writes files below a staging directory.
type Stager struct {
	dir string
}

// New creates a Stager at the given directory.
// The directory is created if it does not exist.
func New(dir string) (*Stager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return &Stager{dir: dir}, nil
}

// Put copies src to rel inside the staging directory. When want is not
// empty the copied content must hash to it. A destination that already
// holds the same content is left alone; the returned bool reports whether
// a copy was made.
func (s *Stager) Put(src, rel, want string) (string, bool, error) {
	dest := filepath.Join(s.dir, filepath.FromSlash(rel))

	if want != "" && s.Has(rel, want) {
		return dest, false, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = in.Close() }()

	fi, err := in.Stat()
	if err != nil {
		return "", false, fmt.Errorf("stat %s: %w", src, err)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("creating output subdirectory: %w", err)
	}

	// Atomic write: temp file + rename.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), in); err != nil {
		return "", false, fmt.Errorf("copying %s: %w", src, err)
	}
	if actual := hex.EncodeToString(h.Sum(nil)); want != "" && actual != want {
		return "", false, fmt.Errorf("%s: content hash %s does not match manifest hash %s", src, actual, want)
	}
	if err := tmp.Sync(); err != nil {
		return "", false, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", false, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, fi.Mode().Perm()); err != nil {
		return "", false, fmt.Errorf("setting mode on %s: %w", dest, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return "", false, fmt.Errorf("renaming temp file to %s: %w", dest, err)
	}

	success = true
	return dest, true, nil
}

// Has reports whether rel exists in the staging directory with the given hash.
func (s *Stager) Has(rel, hash string) bool {
	f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false
	}
	return hex.EncodeToString(h.Sum(nil)) == hash
}

// Size returns the total size of the staged files in bytes.
func (s *Stager) Size() (int64, error) {
	var total int64
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// Path returns the staging directory path.
func (s *Stager) Path() string {
	return s.dir
}
