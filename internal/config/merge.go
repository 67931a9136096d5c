package config

import (
	"errors"
	"fmt"
	"os"
)

// Merge combines two configs where overlay takes precedence over base.
// This implements the hierarchical merge semantics:
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - project, installer, publish, cmake: field by field, non-empty overlay fields win
//   - cmake.defines: deep merge, overlay keys win
//   - build_types: overlay replaces base when non-empty
//   - generators: merge by name — same name in overlay replaces base entry
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.Project = Project{
		Name:    pick(base.Project.Name, overlay.Project.Name),
		Version: pick(base.Project.Version, overlay.Project.Version),
		Author:  pick(base.Project.Author, overlay.Project.Author),
	}

	result.BuildTypes = base.BuildTypes
	if len(overlay.BuildTypes) > 0 {
		result.BuildTypes = overlay.BuildTypes
	}

	result.CMake = CMake{
		Binary:    pick(base.CMake.Binary, overlay.CMake.Binary),
		SourceDir: pick(base.CMake.SourceDir, overlay.CMake.SourceDir),
		BuildDir:  pick(base.CMake.BuildDir, overlay.CMake.BuildDir),
		OutputDir: pick(base.CMake.OutputDir, overlay.CMake.OutputDir),
		Generator: pick(base.CMake.Generator, overlay.CMake.Generator),
		Parallel:  base.CMake.Parallel,
		Defines:   mergeDefines(base.CMake.Defines, overlay.CMake.Defines),
	}
	if overlay.CMake.Parallel != nil {
		result.CMake.Parallel = overlay.CMake.Parallel
	}

	result.Generators = mergeNamedGenerators(base.Generators, overlay.Generators)

	result.Installer = Installer{
		Name:    pick(base.Installer.Name, overlay.Installer.Name),
		Vendor:  pick(base.Installer.Vendor, overlay.Installer.Vendor),
		License: pick(base.Installer.License, overlay.Installer.License),
		Icon:    pick(base.Installer.Icon, overlay.Installer.Icon),
	}

	result.Publish = Publish{
		Provider:  pick(base.Publish.Provider, overlay.Publish.Provider),
		Endpoint:  pick(base.Publish.Endpoint, overlay.Publish.Endpoint),
		Bucket:    pick(base.Publish.Bucket, overlay.Publish.Bucket),
		Prefix:    pick(base.Publish.Prefix, overlay.Publish.Prefix),
		Region:    pick(base.Publish.Region, overlay.Publish.Region),
		Secure:    base.Publish.Secure,
		AccessKey: pick(base.Publish.AccessKey, overlay.Publish.AccessKey),
		SecretKey: pick(base.Publish.SecretKey, overlay.Publish.SecretKey),
	}
	if overlay.Publish.Secure != nil {
		result.Publish.Secure = overlay.Publish.Secure
	}

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// HierarchicalOptions controls LoadHierarchical.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit loads only the project and local layers.
	NoInherit bool
}

// HierarchicalResult is the merged config plus per-layer load status.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo

	// Defaulted is true when no layer existed and Default() was used.
	Defaulted bool
}

// LoadHierarchical loads the system, user, project and local configs, merges
// them in precedence order, and validates the result. Missing layers are
// skipped. When no layer exists at all the built-in Default is returned.
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      opts.ProjectPath,
		SystemConfigPath: opts.SystemConfigPath,
		UserConfigPath:   opts.UserConfigPath,
		NoInherit:        opts.NoInherit,
	})

	var configs []*Config
	for i := range layers {
		cfg, err := Parse(layers[i].Path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			layers[i].Err = err
			return nil, fmt.Errorf("loading %s config: %w", layers[i].Level, err)
		}
		layers[i].Loaded = true
		configs = append(configs, cfg)
	}

	result := &HierarchicalResult{Layers: layers}
	if len(configs) == 0 {
		result.Config = Default()
		result.Defaulted = true
		return result, nil
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return nil, err
	}

	withDefaults(merged)
	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	result.Config = merged
	return result, nil
}

func pick(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d — all config layers must agree on version", base, overlay)
	}
	return nil
}

func mergeDefines(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}

	result := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overlay {
		result[k] = v // overlay wins
	}
	return result
}

func mergeNamedGenerators(base, overlay []GeneratorDefinition) []GeneratorDefinition {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	overlayNames := make(map[string]bool, len(overlay))
	for _, g := range overlay {
		overlayNames[g.Name] = true
	}

	var result []GeneratorDefinition
	for _, g := range base {
		if !overlayNames[g.Name] {
			result = append(result, g)
		}
	}
	result = append(result, overlay...)

	return result
}
