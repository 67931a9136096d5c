// Package generator maps short aliases to CMake generator names and picks
// the platform default.
package generator

import (
	"sort"
	"strings"

	"github.com/bianoble/buildctl/internal/config"
)

// builtinAliases maps aliases accepted on the command line to CMake generator names.
var builtinAliases = map[string]string{
	"make":        "Unix Makefiles",
	"unix":        "Unix Makefiles",
	"ninja":       "Ninja",
	"ninja-multi": "Ninja Multi-Config",
	"vs2022":      "Visual Studio 17 2022",
	"vs2019":      "Visual Studio 16 2019",
	"xcode":       "Xcode",
	"mingw":       "MinGW Makefiles",
}

// Default returns the generator used when none is configured.
func Default(goos string) string {
	if goos == "windows" {
		return "Visual Studio 17 2022"
	}
	return "Unix Makefiles"
}

// Map resolves generator aliases to CMake generator names.
type Map struct {
	definitions map[string]string
}

// NewMap creates a Map with built-in aliases and optional custom overrides.
func NewMap(customDefs []config.GeneratorDefinition) *Map {
	defs := make(map[string]string, len(builtinAliases)+len(customDefs))
	for name, value := range builtinAliases {
		defs[name] = value
	}
	for _, gd := range customDefs {
		defs[strings.ToLower(gd.Name)] = gd.Value
	}
	return &Map{definitions: defs}
}

// Resolve returns the CMake generator name for an alias. Names that are
// not aliases are returned unchanged; CMake rejects unknown generators
// itself with the list of valid ones.
func (m *Map) Resolve(nameOrAlias string) string {
	if v, ok := m.definitions[strings.ToLower(strings.TrimSpace(nameOrAlias))]; ok {
		return v
	}
	return nameOrAlias
}

// Select picks the generator from, in order: the flag value, the config
// value, and the platform default.
func (m *Map) Select(flagValue, configValue, goos string) string {
	switch {
	case flagValue != "":
		return m.Resolve(flagValue)
	case configValue != "":
		return m.Resolve(configValue)
	default:
		return Default(goos)
	}
}

// Known returns all aliases (built-in + custom), sorted.
func (m *Map) Known() []string {
	names := make([]string, 0, len(m.definitions))
	for name := range m.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCustom returns whether an alias comes from config rather than the built-ins.
func (m *Map) IsCustom(alias string) bool {
	_, isBuiltin := builtinAliases[alias]
	_, isDefined := m.definitions[alias]
	return isDefined && !isBuiltin
}

// IsMultiConfig reports whether a generator produces every configuration
// in one build tree, selected at build time with --config.
func IsMultiConfig(generator string) bool {
	return strings.HasPrefix(generator, "Visual Studio") ||
		generator == "Xcode" ||
		generator == "Ninja Multi-Config"
}
