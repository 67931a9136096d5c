package buildctl

import (
	"github.com/bianoble/buildctl/internal/cmake"
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/bianoble/buildctl/internal/fileapi"
)

// Type aliases re-export internal types as the public API.
// Users import "github.com/bianoble/buildctl/pkg/buildctl" and use
// buildctl.BuildResult, buildctl.Artifact, etc.

type Artifact = fileapi.BuildArtifact
type TargetKind = fileapi.TargetKind
type BuildOptions = engine.BuildOptions
type ConfigureResult = engine.ConfigureResult
type BuildResult = engine.BuildResult
type CleanResult = engine.CleanResult
type TestResult = engine.TestResult
type VerifyResult = engine.VerifyResult
type ArtifactDelta = engine.ArtifactDelta
type ArtifactError = engine.ArtifactError
type PublishResult = engine.PublishResult
type UploadedArtifact = engine.UploadedArtifact
type StageResult = engine.StageResult
type Runner = cmake.Runner
type Invocation = cmake.Invocation
type ExitError = cmake.ExitError

const (
	KindExecutable    = fileapi.KindExecutable
	KindStaticLibrary = fileapi.KindStaticLibrary
	KindSharedLibrary = fileapi.KindSharedLibrary
)

// Reply read errors, for use with errors.Is.
var (
	ErrReplyDirMissing   = fileapi.ErrReplyDirMissing
	ErrIndexNotFound     = fileapi.ErrIndexNotFound
	ErrReferenceNotFound = fileapi.ErrReferenceNotFound
)
