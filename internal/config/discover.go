package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config file names.
const (
	FileName      = "buildctl.yaml"
	LocalFileName = "buildctl.local.yaml"
)

const (
	configDirName  = "buildctl"
	cmakeListsFile = "CMakeLists.txt"
)

// ConfigLevel is the precedence level of a configuration layer.
type ConfigLevel string

// Layers from lowest to highest precedence.
const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
	LevelLocal   ConfigLevel = "local"
)

// ConfigLayerInfo describes a config layer and its load status.
type ConfigLayerInfo struct {
	Err    error // non-nil if the file exists but failed to load
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions controls DiscoverPaths.
type DiscoverOptions struct {
	// ProjectPath is the project config file. The local layer is looked
	// up in the same directory.
	ProjectPath string

	// SystemConfigPath and UserConfigPath override the OS defaults.
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit skips the system and user layers. The local layer still
	// applies because it belongs to the checkout.
	NoInherit bool
}

// DiscoverPaths lists the config layers to load, lowest precedence first:
// system, user, project, then buildctl.local.yaml next to the project
// file. A file reachable through two levels is only kept at the lower one.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	candidates := []ConfigLayerInfo{
		{Level: LevelSystem, Path: firstNonEmpty(opts.SystemConfigPath, defaultSystemConfigPath())},
		{Level: LevelUser, Path: firstNonEmpty(opts.UserConfigPath, defaultUserConfigPath())},
		{Level: LevelProject, Path: opts.ProjectPath},
		{Level: LevelLocal, Path: LocalPath(opts.ProjectPath)},
	}
	if opts.NoInherit {
		candidates = candidates[2:]
	}

	layers := make([]ConfigLayerInfo, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.Path == "" {
			continue
		}
		key := c.Path
		if abs, err := filepath.Abs(c.Path); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		layers = append(layers, c)
	}
	return layers
}

// LocalPath returns the per-checkout override file that sits next to a
// project config. It is meant to stay out of version control.
func LocalPath(projectPath string) string {
	if projectPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(projectPath), LocalFileName)
}

// FindProjectRoot walks up from dir to find the project a command runs
// in. The nearest directory holding buildctl.yaml wins. Without one, the
// root is the top of the CMakeLists.txt chain around dir: CMake
// subdirectories carry their own CMakeLists.txt, so the project is the
// outermost directory of the unbroken run that has one.
func FindProjectRoot(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	cmakeTop := ""
	chainBroken := false
	for {
		if isFile(filepath.Join(dir, FileName)) {
			return dir, true
		}
		if !chainBroken {
			switch {
			case isFile(filepath.Join(dir, cmakeListsFile)):
				cmakeTop = dir
			case cmakeTop != "":
				chainBroken = true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cmakeTop, cmakeTop != ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func defaultSystemConfigPath() string {
	if runtime.GOOS == "windows" {
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, FileName)
	}
	return filepath.Join("/etc", configDirName, FileName)
}

func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, FileName)
}
