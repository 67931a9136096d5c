package engine

import (
	"github.com/bianoble/buildctl/internal/config"
	"github.com/bianoble/buildctl/internal/generator"
	"github.com/bianoble/buildctl/internal/upload"
)

// ConfigLayerStatus describes a config layer's load status for display.
type ConfigLayerStatus struct {
	Level  string // "system", "user", "project", "local"
	Path   string
	Loaded bool
}

// InfoResult holds tool information for the info command.
type InfoResult struct {
	Version       string
	ConfigPath    string
	BuildDir      string
	OutputDir     string
	OutputSize    int64
	Generator     string
	MultiConfig   bool
	Project       config.Project
	BuildTypes    []string
	Installer     config.Installer
	Generators    []GeneratorInfo
	ConfigChain   []ConfigLayerStatus
	PublishTarget string
	Providers     []string
}

// GeneratorInfo describes a generator alias.
type GeneratorInfo struct {
	Alias     string
	Generator string
	IsCustom  bool
}

// Info gathers tool information for a loaded build engine.
func Info(version, configPath string, e *BuildEngine) *InfoResult {
	cfg := e.Config
	gens := e.Generators
	if gens == nil {
		gens = generator.NewMap(cfg.Generators)
	}

	r := &InfoResult{
		Version:    version,
		ConfigPath: configPath,
		BuildDir:   e.BuildDir(),
		OutputDir:  e.OutputDir(),
		OutputSize: e.OutputSize(),
		Generator:  e.Generator(""),
		Project:    cfg.Project,
		BuildTypes: cfg.BuildTypes,
		Installer:  cfg.Installer,
		Providers:  upload.Providers(),
	}
	r.MultiConfig = generator.IsMultiConfig(r.Generator)

	for _, alias := range gens.Known() {
		r.Generators = append(r.Generators, GeneratorInfo{
			Alias:     alias,
			Generator: gens.Resolve(alias),
			IsCustom:  gens.IsCustom(alias),
		})
	}

	if cfg.Publish.Enabled() {
		r.PublishTarget = cfg.Publish.Provider + "://" + cfg.Publish.Endpoint + "/" + cfg.Publish.Bucket
		if cfg.Publish.Prefix != "" {
			r.PublishTarget += "/" + cfg.Publish.Prefix
		}
	}

	return r
}
