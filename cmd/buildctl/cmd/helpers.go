package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/buildctl/internal/cmake"
	"github.com/bianoble/buildctl/internal/config"
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/bianoble/buildctl/internal/generator"
	"github.com/bianoble/buildctl/internal/manifest"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

// newRunner creates the process runner. Tests replace it.
var newRunner = func() cmake.Runner {
	return &cmake.ExecRunner{}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfigHierarchical loads .env, then the system, user and project
// config layers, then environment overrides.
func loadConfigHierarchical() (*config.HierarchicalResult, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	config.LoadDotEnv(filepath.Join(root, ".env"))

	path := resolvedConfigPath()
	hr, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: path,
		NoInherit:   config.EnvNoInherit(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	config.ApplyEnv(hr.Config)
	if errs := config.Validate(hr.Config); len(errs) > 0 {
		return nil, fmt.Errorf("loading config %s: %w", path, &config.ValidationError{Errors: errs})
	}
	return hr, nil
}

// loadConfig returns the merged configuration.
func loadConfig() (*config.Config, error) {
	hr, err := loadConfigHierarchical()
	if err != nil {
		return nil, err
	}
	if hr.Defaulted {
		detail("no config found at %s, using defaults", resolvedConfigPath())
	}
	return hr.Config, nil
}

// resolvedConfigPath returns the config file to load. When --file is left
// at its default and the working directory has no such file, the project
// is found by walking up from the working directory.
func resolvedConfigPath() string {
	if configPath != config.FileName {
		return configPath
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}
	wd, err := os.Getwd()
	if err != nil {
		return configPath
	}
	if root, ok := config.FindProjectRoot(wd); ok {
		return filepath.Join(root, config.FileName)
	}
	return configPath
}

// projectRoot returns the directory containing the config file.
func projectRoot() (string, error) {
	abs, err := filepath.Abs(resolvedConfigPath())
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return filepath.Dir(abs), nil
}

// newBuildEngine wires a build engine for the loaded config.
func newBuildEngine(cfg *config.Config) (*engine.BuildEngine, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	return &engine.BuildEngine{
		Runner:      newRunner(),
		Reader:      fileapi.NewReader(),
		Generators:  generator.NewMap(cfg.Generators),
		Config:      cfg,
		ProjectRoot: root,
		BeforeRun:   announceStep,
	}, nil
}

// announceStep prints the progress line for an external process.
func announceStep(inv cmake.Invocation) {
	switch inv.Step {
	case "configure":
		info("⚙️  Configuring CMake...")
	case "build":
		info("🔨 Building project...")
	case "test":
		info("   Executing: %s", inv.Binary)
	}
	detail("$ %s", inv.String())
}

// loadManifest reads the manifest of the last build.
func loadManifest(e *engine.BuildEngine) (*manifest.Manifest, string, error) {
	path := manifest.Path(e.BuildDir())
	m, err := manifest.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, path, fmt.Errorf("no build manifest at %s (run 'buildctl build' first)", path)
	}
	if err != nil {
		return nil, path, err
	}
	return m, path, nil
}

// printArtifacts renders the artifact listing unless quiet mode is active.
func printArtifacts(artifacts []fileapi.BuildArtifact) error {
	if quiet {
		return nil
	}
	return fileapi.PrintArtifacts(os.Stdout, artifacts)
}

func humanSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// success prints a highlighted line unless quiet mode is active.
func success(format string, args ...any) {
	if !quiet {
		fmt.Println(color.Success.Sprintf(format, args...))
	}
}

// warn prints a warning line unless quiet mode is active.
func warn(format string, args ...any) {
	if !quiet {
		fmt.Println(color.Warn.Sprintf(format, args...))
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.Danger.Sprintf("error: "+format, args...))
}
