package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a buildctl.yaml configuration file.
func Load(path string) (*Config, error) {
	cfg, err := Parse(path)
	if err != nil {
		return nil, err
	}

	withDefaults(cfg)
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// Parse decodes a config file without applying defaults or validation.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if strings.TrimSpace(cfg.Project.Name) == "" {
		errs = append(errs, "project: 'name' is required")
	}

	// Build types.
	if len(cfg.BuildTypes) == 0 {
		errs = append(errs, "at least one build type is required")
	}
	seenTypes := make(map[string]bool)
	for i, bt := range cfg.BuildTypes {
		switch {
		case strings.TrimSpace(bt) == "":
			errs = append(errs, fmt.Sprintf("build_types[%d]: empty build type", i))
		case seenTypes[bt]:
			errs = append(errs, fmt.Sprintf("build_types[%d]: duplicate build type '%s'", i, bt))
		default:
			seenTypes[bt] = true
		}
	}

	// CMake directories.
	if cfg.CMake.BuildDir == "" {
		errs = append(errs, "cmake: 'build_dir' is required")
	}
	if cfg.CMake.BuildDir != "" && cfg.CMake.BuildDir == cfg.CMake.OutputDir {
		errs = append(errs, fmt.Sprintf("cmake: 'build_dir' and 'output_dir' must differ (both are '%s')", cfg.CMake.BuildDir))
	}
	for k := range cfg.CMake.Defines {
		if k == "" || strings.ContainsAny(k, "= ") {
			errs = append(errs, fmt.Sprintf("cmake: invalid define name '%s'", k))
		}
	}

	// Generator aliases.
	genNames := make(map[string]bool)
	for i, gd := range cfg.Generators {
		prefix := fmt.Sprintf("generators[%d]", i)
		if gd.Name != "" {
			prefix = fmt.Sprintf("generator '%s'", gd.Name)
		}

		if gd.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: 'name' is required", prefix))
		} else if genNames[gd.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate generator name '%s'", prefix, gd.Name))
		} else {
			genNames[gd.Name] = true
		}
		if gd.Value == "" {
			errs = append(errs, fmt.Sprintf("%s: 'value' is required — the CMake generator name, e.g. 'Ninja'", prefix))
		}
	}

	errs = append(errs, validatePublish(cfg.Publish)...)

	return errs
}

func validatePublish(p Publish) []string {
	var errs []string

	switch p.Provider {
	case "", "minio":
	default:
		errs = append(errs, fmt.Sprintf("publish: unknown provider '%s' — must be: minio", p.Provider))
	}

	if p.Endpoint != "" && p.Bucket == "" {
		errs = append(errs, "publish: 'bucket' is required when 'endpoint' is set")
	}
	if p.Endpoint == "" && (p.Bucket != "" || p.Prefix != "") {
		errs = append(errs, "publish: 'endpoint' is required when 'bucket' or 'prefix' is set")
	}
	if strings.Contains(p.Endpoint, "://") {
		errs = append(errs, fmt.Sprintf("publish: endpoint '%s' must be host[:port] without a scheme — use 'secure' to select https", p.Endpoint))
	}

	return errs
}
