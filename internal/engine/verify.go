package engine

import (
	"os"
	"path/filepath"

	"github.com/bianoble/buildctl/internal/manifest"
)

// VerifyEngine compares a build manifest with the artifacts on disk.
type VerifyEngine struct{}

// Verify hashes every artifact recorded in the manifest. Artifacts recorded
// without a hash are reported as changed if they now exist.
func (e *VerifyEngine) Verify(m *manifest.Manifest) (*VerifyResult, error) {
	result := &VerifyResult{}

	for _, a := range m.Artifacts {
		sum, _, err := manifest.HashFile(filepath.FromSlash(a.Path))
		if err != nil {
			if os.IsNotExist(err) {
				result.Missing = append(result.Missing, a.Path)
				continue
			}
			return nil, ArtifactError{Artifact: a.Name, Err: err}
		}

		if sum != a.SHA256 {
			expected := a.SHA256
			if expected == "" {
				expected = "(absent at build time)"
			}
			result.Changed = append(result.Changed, ArtifactDelta{
				Name:     a.Name,
				Path:     a.Path,
				Expected: expected,
				Actual:   sum,
			})
			continue
		}

		result.Unchanged = append(result.Unchanged, a.Path)
	}

	return result, nil
}
