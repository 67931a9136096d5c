package engine

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bianoble/buildctl/internal/manifest"
	"github.com/bianoble/buildctl/internal/sandbox"
	"github.com/bianoble/buildctl/internal/stage"
)

// Stage copies the manifest's artifacts to <output_dir>/<configuration>/.
// Each copy must match the hash recorded at build time. Artifacts that
// were not on disk at build time are skipped.
func (e *BuildEngine) Stage(m *manifest.Manifest) (*StageResult, error) {
	outDir, err := sandbox.SafeMkdirAll(e.ProjectRoot, e.Config.CMake.OutputDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	s, err := stage.New(outDir)
	if err != nil {
		return nil, err
	}

	names, err := fileNames(m)
	if err != nil {
		return nil, err
	}

	result := &StageResult{Dir: s.Path()}
	for i, a := range m.Artifacts {
		if a.SHA256 == "" {
			result.Skipped = append(result.Skipped, a.Path)
			continue
		}

		rel := path.Join(m.Configuration, names[i])
		dest, copied, err := s.Put(filepath.FromSlash(a.Path), rel, a.SHA256)
		if err != nil {
			if os.IsNotExist(err) {
				return result, ArtifactError{Artifact: a.Name, Err: fmt.Errorf("%s no longer exists (rebuild first)", a.Path)}
			}
			return result, ArtifactError{Artifact: a.Name, Err: err}
		}
		if copied {
			result.Staged = append(result.Staged, dest)
		} else {
			result.Unchanged = append(result.Unchanged, dest)
		}
	}
	return result, nil
}

// OutputSize returns the total size of the output directory, or 0 if it
// does not exist.
func (e *BuildEngine) OutputSize() int64 {
	dir := e.OutputDir()
	if _, err := os.Stat(dir); err != nil {
		return 0
	}
	s, err := stage.New(dir)
	if err != nil {
		return 0
	}
	size, err := s.Size()
	if err != nil {
		return 0
	}
	return size
}

// fileNames returns the file name each artifact is staged and published
// under, in manifest order. Artifacts land side by side in one directory,
// so two of them sharing a name (ignoring case) is an error.
func fileNames(m *manifest.Manifest) ([]string, error) {
	names := make([]string, len(m.Artifacts))
	owners := make(map[string]manifest.Artifact, len(m.Artifacts))
	for i, a := range m.Artifacts {
		name := path.Base(a.Path)
		key := strings.ToLower(name)
		if prev, ok := owners[key]; ok {
			return nil, ArtifactError{
				Artifact: a.Name,
				Err:      fmt.Errorf("file name %s collides with artifact %s (%s)", name, prev.Name, prev.Path),
			}
		}
		owners[key] = a
		names[i] = name
	}
	return names, nil
}
