// Package buildctl provides the public Go library API for buildctl.
//
// buildctl configures and builds CMake projects and discovers the produced
// executables and libraries through the CMake file API. This package
// exposes the same operations as the command line for embedding in other
// Go programs.
//
// # Basic Usage
//
//	client, err := buildctl.New(buildctl.Options{
//	    ProjectRoot: "/path/to/project",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Configure and build, then list what was produced
//	result, err := client.Build(ctx, buildctl.BuildOptions{Configuration: "Debug"})
//	for _, a := range result.Artifacts {
//	    fmt.Println(a.Kind, a.Path)
//	}
package buildctl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bianoble/buildctl/internal/cmake"
	"github.com/bianoble/buildctl/internal/config"
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/bianoble/buildctl/internal/generator"
	"github.com/bianoble/buildctl/internal/manifest"
)

// Options configures a buildctl client.
type Options struct {
	// ProjectRoot is the directory containing buildctl.yaml. If empty, it
	// is the directory containing ConfigPath, or when that is empty too,
	// the project found by walking up from the working directory.
	ProjectRoot string

	// ConfigPath is the path to the config file. Default: "buildctl.yaml"
	// inside ProjectRoot. A missing file means the built-in defaults.
	ConfigPath string

	// NoInherit disables system and user config layers.
	NoInherit bool

	// Runner executes CMake and test processes. Default: child processes
	// with output passed through to os.Stdout and os.Stderr.
	Runner Runner
}

// Client is the main entry point for the buildctl library.
type Client struct {
	cfg         *config.Config
	runner      cmake.Runner
	reader      *fileapi.Reader
	projectRoot string
	configPath  string
}

// New creates a client, loading configuration once.
func New(opts Options) (*Client, error) {
	root := opts.ProjectRoot
	if root == "" {
		if opts.ConfigPath == "" {
			root = "."
			if found, ok := config.FindProjectRoot(root); ok {
				root = found
			}
		} else {
			root = filepath.Dir(opts.ConfigPath)
		}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(absRoot, config.FileName)
	}

	result, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: cfgPath,
		NoInherit:   opts.NoInherit || config.EnvNoInherit(),
	})
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(result.Config)
	if errs := config.Validate(result.Config); len(errs) > 0 {
		return nil, &config.ValidationError{Errors: errs}
	}

	runner := opts.Runner
	if runner == nil {
		runner = &cmake.ExecRunner{}
	}

	return &Client{
		cfg:         result.Config,
		runner:      runner,
		reader:      fileapi.NewReader(),
		projectRoot: absRoot,
		configPath:  cfgPath,
	}, nil
}

func (c *Client) engine() *engine.BuildEngine {
	return &engine.BuildEngine{
		Runner:      c.runner,
		Reader:      c.reader,
		Generators:  generator.NewMap(c.cfg.Generators),
		Config:      c.cfg,
		ProjectRoot: c.projectRoot,
	}
}

// BuildDir returns the absolute build directory.
func (c *Client) BuildDir() string {
	return c.engine().BuildDir()
}

// Configure writes the file API query and runs the CMake configure step.
func (c *Client) Configure(ctx context.Context, opts BuildOptions) (*ConfigureResult, error) {
	return c.engine().Configure(ctx, opts)
}

// Build configures and builds the project, returning its artifacts.
func (c *Client) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return c.engine().Build(ctx, opts)
}

// Artifacts reads the artifacts of an existing build. Repeated calls reuse
// parsed target descriptors.
func (c *Client) Artifacts(kinds ...TargetKind) ([]Artifact, error) {
	arts, err := c.engine().Artifacts()
	if err != nil {
		return nil, err
	}
	return engine.FilterByKind(arts, kinds...), nil
}

// RunTest runs the test executable chosen for configuration.
func (c *Client) RunTest(ctx context.Context, configuration string) (*TestResult, error) {
	e := c.engine()
	arts, err := e.Artifacts()
	if err != nil {
		return nil, err
	}
	return e.RunTest(ctx, arts, configuration)
}

// Clean removes the build and output directories.
func (c *Client) Clean() (*CleanResult, error) {
	return c.engine().Clean()
}

// Verify compares the last build manifest with the artifacts on disk.
func (c *Client) Verify() (*VerifyResult, error) {
	m, err := manifest.Load(manifest.Path(c.BuildDir()))
	if err != nil {
		return nil, err
	}
	return (&engine.VerifyEngine{}).Verify(m)
}

// Publish uploads the last build's artifacts to the configured store.
func (c *Client) Publish(ctx context.Context) (*PublishResult, error) {
	manifestPath := manifest.Path(c.BuildDir())
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	provider, err := engine.OpenProvider(c.cfg.Publish)
	if err != nil {
		return nil, err
	}
	return (&engine.PublishEngine{Provider: provider}).Publish(ctx, m, manifestPath)
}

// Stage copies the last build's artifacts to the output directory.
func (c *Client) Stage() (*StageResult, error) {
	m, err := manifest.Load(manifest.Path(c.BuildDir()))
	if err != nil {
		return nil, err
	}
	return c.engine().Stage(m)
}
