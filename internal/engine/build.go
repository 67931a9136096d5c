// Package engine drives CMake through configure, build, and the file API
// reply, and implements the clean, verify, and publish operations.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bianoble/buildctl/internal/cmake"
	"github.com/bianoble/buildctl/internal/config"
	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/bianoble/buildctl/internal/generator"
	"github.com/bianoble/buildctl/internal/manifest"
	"github.com/bianoble/buildctl/internal/sandbox"
)

// BuildEngine orchestrates configure, build, and artifact discovery.
type BuildEngine struct {
	Runner      cmake.Runner
	Reader      *fileapi.Reader
	Generators  *generator.Map
	Config      *config.Config
	ProjectRoot string

	// GOOS selects platform defaults. Empty means runtime.GOOS.
	GOOS string

	// BeforeRun, if set, is called before each external process starts.
	BeforeRun func(inv cmake.Invocation)
}

func (e *BuildEngine) run(ctx context.Context, inv cmake.Invocation) error {
	if e.BeforeRun != nil {
		e.BeforeRun(inv)
	}
	return e.Runner.Run(ctx, inv)
}

func (e *BuildEngine) goos() string {
	if e.GOOS != "" {
		return e.GOOS
	}
	return runtime.GOOS
}

func (e *BuildEngine) reader() *fileapi.Reader {
	if e.Reader == nil {
		e.Reader = fileapi.NewReader()
	}
	return e.Reader
}

func (e *BuildEngine) projectPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(e.ProjectRoot, p)
}

// BuildDir returns the absolute build directory.
func (e *BuildEngine) BuildDir() string {
	return e.projectPath(e.Config.CMake.BuildDir)
}

// OutputDir returns the absolute output directory.
func (e *BuildEngine) OutputDir() string {
	return e.projectPath(e.Config.CMake.OutputDir)
}

// Generator returns the CMake generator for a flag value, falling back to
// the configured generator and then the platform default.
func (e *BuildEngine) Generator(flagValue string) string {
	gens := e.Generators
	if gens == nil {
		gens = generator.NewMap(e.Config.Generators)
	}
	return gens.Select(flagValue, e.Config.CMake.Generator, e.goos())
}

func configuration(opts BuildOptions) string {
	if opts.Configuration == "" {
		return DefaultConfiguration
	}
	return opts.Configuration
}

// Configure creates the build directory, writes the file API query and
// runs the CMake configure step.
func (e *BuildEngine) Configure(ctx context.Context, opts BuildOptions) (*ConfigureResult, error) {
	buildDir, err := sandbox.SafeMkdirAll(e.ProjectRoot, e.Config.CMake.BuildDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating build directory: %w", err)
	}

	if err := fileapi.WriteQuery(buildDir); err != nil {
		return nil, err
	}

	res := &ConfigureResult{
		BuildDir:      buildDir,
		Configuration: configuration(opts),
		Generator:     e.Generator(opts.Generator),
	}
	res.Invocation = cmake.Invocation{
		Step:   "configure",
		Binary: e.Config.CMakeBinary(),
		Args: cmake.ConfigureArgs(cmake.ConfigureOptions{
			SourceDir:     e.projectPath(e.Config.CMake.SourceDir),
			BuildDir:      buildDir,
			Configuration: res.Configuration,
			Generator:     res.Generator,
			Defines:       e.Config.CMake.Defines,
		}),
		Dir: e.ProjectRoot,
	}

	if err := e.run(ctx, res.Invocation); err != nil {
		return nil, err
	}
	return res, nil
}

// Build configures, builds, reads the reply and writes the build manifest.
func (e *BuildEngine) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	conf, err := e.Configure(ctx, opts)
	if err != nil {
		return nil, err
	}

	inv := cmake.Invocation{
		Step:   "build",
		Binary: e.Config.CMakeBinary(),
		Args: cmake.BuildArgs(cmake.BuildOptions{
			BuildDir:      conf.BuildDir,
			Configuration: conf.Configuration,
			Parallel:      e.Config.ParallelBuild() && e.goos() != "windows",
		}),
		Dir: e.ProjectRoot,
	}
	if err := e.run(ctx, inv); err != nil {
		return nil, err
	}

	reply, err := e.reader().Read(conf.BuildDir)
	if err != nil {
		return nil, fmt.Errorf("reading build artifacts: %w", err)
	}

	m, err := manifest.New(e.Config.Project.Name, e.Config.Project.Version, conf.Configuration, conf.Generator, reply.Artifacts)
	if err != nil {
		return nil, err
	}
	manifestPath := manifest.Path(conf.BuildDir)
	if err := manifest.Save(manifestPath, m); err != nil {
		return nil, err
	}

	return &BuildResult{
		ConfigureResult: *conf,
		Artifacts:       reply.Artifacts,
		IndexPath:       reply.IndexPath,
		ManifestPath:    manifestPath,
	}, nil
}

// Artifacts reads the reply of an existing build without running CMake.
func (e *BuildEngine) Artifacts() ([]fileapi.BuildArtifact, error) {
	reply, err := e.reader().Read(e.BuildDir())
	if err != nil {
		return nil, err
	}
	return reply.Artifacts, nil
}

// Clean removes the build and output directories. Both must lie inside the
// project root.
func (e *BuildEngine) Clean() (*CleanResult, error) {
	result := &CleanResult{}
	for _, dir := range []string{e.Config.CMake.BuildDir, e.Config.CMake.OutputDir} {
		if dir == "" {
			continue
		}
		removed, err := sandbox.SafeRemoveAll(e.ProjectRoot, dir)
		if err != nil {
			return result, fmt.Errorf("cleaning %s: %w", dir, err)
		}
		if removed {
			result.Removed = append(result.Removed, dir)
		} else {
			result.Absent = append(result.Absent, dir)
		}
	}
	return result, nil
}

// SelectTestExecutable picks the executable to run after a build: the first
// EXECUTABLE whose path contains the configuration name, otherwise the first
// EXECUTABLE. Multi-config generators place each configuration in its own
// subdirectory, which is what the path match targets.
func SelectTestExecutable(artifacts []fileapi.BuildArtifact, configuration string) (fileapi.BuildArtifact, bool) {
	if configuration != "" {
		for _, a := range artifacts {
			if a.Kind == fileapi.KindExecutable && strings.Contains(a.Path, configuration) {
				return a, true
			}
		}
	}
	for _, a := range artifacts {
		if a.Kind == fileapi.KindExecutable {
			return a, true
		}
	}
	return fileapi.BuildArtifact{}, false
}

// RunTest runs the selected test executable. Having no executable is not
// an error; the result's Executable is nil.
func (e *BuildEngine) RunTest(ctx context.Context, artifacts []fileapi.BuildArtifact, configuration string) (*TestResult, error) {
	exe, ok := SelectTestExecutable(artifacts, configuration)
	if !ok {
		return &TestResult{}, nil
	}

	result := &TestResult{
		Executable: &exe,
		Invocation: cmake.Invocation{
			Step:   "test",
			Binary: filepath.FromSlash(exe.Path),
			Dir:    e.ProjectRoot,
		},
	}
	if err := e.run(ctx, result.Invocation); err != nil {
		return result, err
	}
	return result, nil
}

// FilterByKind keeps artifacts of the given kinds, in order. No kinds keeps all.
func FilterByKind(artifacts []fileapi.BuildArtifact, kinds ...fileapi.TargetKind) []fileapi.BuildArtifact {
	if len(kinds) == 0 {
		return artifacts
	}
	want := make(map[fileapi.TargetKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	out := make([]fileapi.BuildArtifact, 0, len(artifacts))
	for _, a := range artifacts {
		if want[a.Kind] {
			out = append(out, a)
		}
	}
	return out
}

// ParseKind accepts a target kind in CMake spelling or a short form such
// as "executable", "static" or "shared".
func ParseKind(s string) (fileapi.TargetKind, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "EXECUTABLE", "EXE", "BIN":
		return fileapi.KindExecutable, nil
	case "STATIC_LIBRARY", "STATIC":
		return fileapi.KindStaticLibrary, nil
	case "SHARED_LIBRARY", "SHARED":
		return fileapi.KindSharedLibrary, nil
	}
	return "", fmt.Errorf("unknown artifact kind '%s' (want executable, static, or shared)", s)
}
