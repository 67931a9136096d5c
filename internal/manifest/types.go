// Package manifest records the artifacts of the last successful build.
package manifest

import "github.com/bianoble/buildctl/internal/fileapi"

// FileName is the manifest's name inside the build directory.
const FileName = "buildctl-manifest.yaml"

// Manifest is the buildctl-manifest.yaml file written after each build.
type Manifest struct {
	Version        int        `yaml:"version"`
	BuildID        string     `yaml:"build_id"`
	Project        string     `yaml:"project"`
	ProjectVersion string     `yaml:"project_version,omitempty"`
	Configuration  string     `yaml:"configuration"`
	Generator      string     `yaml:"generator"`
	Artifacts      []Artifact `yaml:"artifacts"`
}

// Artifact is a recorded build artifact with its content hash.
// SHA256 is empty when the file was not on disk at build time.
type Artifact struct {
	Name   string             `yaml:"name"`
	Kind   fileapi.TargetKind `yaml:"kind"`
	Path   string             `yaml:"path"`
	SHA256 string             `yaml:"sha256,omitempty"`
	Size   int64              `yaml:"size,omitempty"`
}

// BuildArtifacts returns the manifest entries as file API artifacts.
func (m *Manifest) BuildArtifacts() []fileapi.BuildArtifact {
	out := make([]fileapi.BuildArtifact, 0, len(m.Artifacts))
	for _, a := range m.Artifacts {
		out = append(out, fileapi.BuildArtifact{Name: a.Name, Kind: a.Kind, Path: a.Path})
	}
	return out
}
