package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvGenerator       = "BUILDCTL_GENERATOR"
	EnvBuildDir        = "BUILDCTL_BUILD_DIR"
	EnvOutputDir       = "BUILDCTL_OUTPUT_DIR"
	EnvCMake           = "BUILDCTL_CMAKE"
	EnvPublishEndpoint = "BUILDCTL_PUBLISH_ENDPOINT"
	EnvPublishBucket   = "BUILDCTL_PUBLISH_BUCKET"
	EnvPublishAccess   = "BUILDCTL_PUBLISH_ACCESS_KEY"
	EnvPublishSecret   = "BUILDCTL_PUBLISH_SECRET_KEY"
	EnvNoInheritKey    = "BUILDCTL_NO_INHERIT"
)

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment. Variables already set are not overridden and
// missing files are ignored.
func LoadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// ApplyEnv overrides config fields from the environment. Publish
// credentials are only ever taken from here.
func ApplyEnv(cfg *Config) {
	setIfEnv(&cfg.CMake.Generator, EnvGenerator)
	setIfEnv(&cfg.CMake.BuildDir, EnvBuildDir)
	setIfEnv(&cfg.CMake.OutputDir, EnvOutputDir)
	setIfEnv(&cfg.CMake.Binary, EnvCMake)
	setIfEnv(&cfg.Publish.Endpoint, EnvPublishEndpoint)
	setIfEnv(&cfg.Publish.Bucket, EnvPublishBucket)
	setIfEnv(&cfg.Publish.AccessKey, EnvPublishAccess)
	setIfEnv(&cfg.Publish.SecretKey, EnvPublishSecret)

	if cfg.Publish.Provider == "" && cfg.Publish.Endpoint != "" {
		cfg.Publish.Provider = "minio"
	}
}

func setIfEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// envBoolTrue returns true if the env var is set to "1" or "true" (case-insensitive).
func envBoolTrue(key string) bool {
	v := os.Getenv(key)
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true"
}

// EnvNoInherit reports whether BUILDCTL_NO_INHERIT asks to skip the system
// and user config layers.
func EnvNoInherit() bool {
	return envBoolTrue(EnvNoInheritKey)
}
