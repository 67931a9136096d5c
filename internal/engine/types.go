package engine

import (
	"github.com/bianoble/buildctl/internal/cmake"
	"github.com/bianoble/buildctl/internal/fileapi"
)

// DefaultConfiguration is used when no build configuration is given.
const DefaultConfiguration = "Release"

// BuildOptions configures a configure or build run.
type BuildOptions struct {
	Configuration string // empty = DefaultConfiguration
	Generator     string // name or alias; empty = config, then platform default
}

// ConfigureResult holds the outcome of a configure run.
type ConfigureResult struct {
	BuildDir      string
	Configuration string
	Generator     string
	Invocation    cmake.Invocation
}

// BuildResult holds the outcome of a build run.
type BuildResult struct {
	ConfigureResult
	Artifacts    []fileapi.BuildArtifact
	IndexPath    string
	ManifestPath string
}

// CleanResult lists the directories a clean removed or found absent.
type CleanResult struct {
	Removed []string
	Absent  []string
}

// TestResult holds the outcome of running the selected test executable.
// Executable is nil when the build produced no executable.
type TestResult struct {
	Executable *fileapi.BuildArtifact
	Invocation cmake.Invocation
}

// ArtifactError represents an error associated with a specific artifact.
type ArtifactError struct {
	Artifact string
	Err      error
}

func (e ArtifactError) Error() string {
	return e.Artifact + ": " + e.Err.Error()
}

func (e ArtifactError) Unwrap() error {
	return e.Err
}

// ArtifactDelta is an artifact whose content differs from the manifest.
type ArtifactDelta struct {
	Name     string
	Path     string
	Expected string
	Actual   string
}

// VerifyResult holds the outcome of a verify operation.
type VerifyResult struct {
	Unchanged []string
	Changed   []ArtifactDelta
	Missing   []string
}

// Clean reports whether every artifact matches the manifest.
func (r *VerifyResult) Clean() bool {
	return len(r.Changed) == 0 && len(r.Missing) == 0
}

// UploadedArtifact records one object written by a publish.
type UploadedArtifact struct {
	Name   string
	Path   string
	Object string
}

// PublishResult holds the outcome of a publish operation.
type PublishResult struct {
	Provider string
	Uploaded []UploadedArtifact
	Skipped  []string
	Errors   []ArtifactError
}

// StageResult holds the outcome of copying artifacts to the output directory.
type StageResult struct {
	Dir       string
	Staged    []string
	Unchanged []string
	Skipped   []string
}
