package config

// Config represents the buildctl.yaml configuration file.
type Config struct {
	Version    int                   `yaml:"version"`
	Project    Project               `yaml:"project"`
	BuildTypes []string              `yaml:"build_types,omitempty"`
	CMake      CMake                 `yaml:"cmake"`
	Generators []GeneratorDefinition `yaml:"generators,omitempty"`
	Installer  Installer             `yaml:"installer,omitempty"`
	Publish    Publish               `yaml:"publish,omitempty"`
}

// Project identifies the project being built.
type Project struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	Author  string `yaml:"author,omitempty"`
}

// CMake controls how CMake is invoked.
type CMake struct {
	Binary    string            `yaml:"binary,omitempty"` // default "cmake"
	SourceDir string            `yaml:"source_dir,omitempty"`
	BuildDir  string            `yaml:"build_dir,omitempty"`
	OutputDir string            `yaml:"output_dir,omitempty"`
	Generator string            `yaml:"generator,omitempty"` // name or alias
	Parallel  *bool             `yaml:"parallel,omitempty"`
	Defines   map[string]string `yaml:"defines,omitempty"`
}

// GeneratorDefinition maps a short alias to a CMake generator name.
type GeneratorDefinition struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Installer holds packaging metadata. It is displayed by `info` only.
type Installer struct {
	Name    string `yaml:"name,omitempty"`
	Vendor  string `yaml:"vendor,omitempty"`
	License string `yaml:"license,omitempty"`
	Icon    string `yaml:"icon,omitempty"`
}

// Publish configures artifact upload to object storage.
// Credentials are never read from the file; see ApplyEnv.
type Publish struct {
	Provider  string `yaml:"provider,omitempty"` // "minio"
	Endpoint  string `yaml:"endpoint,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Secure    *bool  `yaml:"secure,omitempty"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Enabled reports whether a publish target is configured.
func (p Publish) Enabled() bool {
	return p.Endpoint != ""
}

// Default returns the configuration used when no buildctl.yaml exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Project: Project{
			Name:    "MyApp",
			Version: "1.0.0",
		},
		BuildTypes: []string{"Debug", "Release"},
		CMake: CMake{
			SourceDir: ".",
			BuildDir:  "build",
			OutputDir: "dist",
		},
	}
}

// withDefaults fills zero-valued fields from Default.
func withDefaults(cfg *Config) *Config {
	def := Default()
	if len(cfg.BuildTypes) == 0 {
		cfg.BuildTypes = def.BuildTypes
	}
	if cfg.CMake.SourceDir == "" {
		cfg.CMake.SourceDir = def.CMake.SourceDir
	}
	if cfg.CMake.BuildDir == "" {
		cfg.CMake.BuildDir = def.CMake.BuildDir
	}
	if cfg.CMake.OutputDir == "" {
		cfg.CMake.OutputDir = def.CMake.OutputDir
	}
	if cfg.Publish.Provider == "" && cfg.Publish.Endpoint != "" {
		cfg.Publish.Provider = "minio"
	}
	return cfg
}

// CMakeBinary returns the cmake executable to invoke.
func (c *Config) CMakeBinary() string {
	if c.CMake.Binary != "" {
		return c.CMake.Binary
	}
	return "cmake"
}

// ParallelBuild reports whether `cmake --build` should pass --parallel.
func (c *Config) ParallelBuild() bool {
	return c.CMake.Parallel == nil || *c.CMake.Parallel
}
