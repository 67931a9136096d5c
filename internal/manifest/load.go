package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Path returns the manifest location inside a build directory.
func Path(buildDir string) string {
	return filepath.Join(buildDir, FileName)
}

// New builds a manifest from discovered artifacts, hashing each file that
// exists. A missing file is recorded without a hash.
func New(project, projectVersion, configuration, generator string, artifacts []fileapi.BuildArtifact) (*Manifest, error) {
	m := &Manifest{
		Version:        1,
		BuildID:        uuid.NewString(),
		Project:        project,
		ProjectVersion: projectVersion,
		Configuration:  configuration,
		Generator:      generator,
		Artifacts:      make([]Artifact, 0, len(artifacts)),
	}

	for _, a := range artifacts {
		entry := Artifact{Name: a.Name, Kind: a.Kind, Path: a.Path}
		sum, size, err := HashFile(filepath.FromSlash(a.Path))
		switch {
		case err == nil:
			entry.SHA256 = sum
			entry.Size = size
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("hashing artifact %s: %w", a.Path, err)
		}
		m.Artifacts = append(m.Artifacts, entry)
	}

	return m, nil
}

// HashFile returns the hex SHA256 and size of a file.
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if errs := Validate(&m); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &m, nil
}

// Save writes a manifest atomically using a temp file and rename.
func Save(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp manifest %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp manifest to %s: %w", path, err)
	}

	return nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Manifest for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(m *Manifest) []string {
	var errs []string

	if m.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", m.Version))
	}
	if m.BuildID != "" {
		if _, err := uuid.Parse(m.BuildID); err != nil {
			errs = append(errs, fmt.Sprintf("invalid build_id '%s'", m.BuildID))
		}
	}
	if m.Configuration == "" {
		errs = append(errs, "'configuration' is required")
	}

	for i, a := range m.Artifacts {
		prefix := fmt.Sprintf("artifact[%d]", i)
		if a.Name != "" {
			prefix = fmt.Sprintf("artifact '%s'", a.Name)
		}

		if a.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		}
		if a.Path == "" {
			errs = append(errs, fmt.Sprintf("%s: 'path' is required", prefix))
		}
		if !a.Kind.IsLinkable() {
			errs = append(errs, fmt.Sprintf("%s: unexpected kind '%s'", prefix, a.Kind))
		}
	}

	return errs
}
