package generator

import (
	"testing"

	"github.com/bianoble/buildctl/internal/config"
)

func TestBuiltinAliasResolution(t *testing.T) {
	m := NewMap(nil)

	tests := []struct {
		alias string
		want  string
	}{
		{"make", "Unix Makefiles"},
		{"ninja", "Ninja"},
		{"NINJA", "Ninja"},
		{" ninja-multi ", "Ninja Multi-Config"},
		{"vs2022", "Visual Studio 17 2022"},
		{"xcode", "Xcode"},
	}

	for _, tt := range tests {
		if got := m.Resolve(tt.alias); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}

func TestResolvePassesThroughGeneratorNames(t *testing.T) {
	m := NewMap(nil)
	if got := m.Resolve("Borland Makefiles"); got != "Borland Makefiles" {
		t.Errorf("got %q", got)
	}
}

func TestCustomAliasOverridesBuiltin(t *testing.T) {
	m := NewMap([]config.GeneratorDefinition{
		{Name: "ninja", Value: "Ninja Multi-Config"},
		{Name: "Fast", Value: "Ninja"},
	})

	if got := m.Resolve("ninja"); got != "Ninja Multi-Config" {
		t.Errorf("ninja = %q", got)
	}
	if got := m.Resolve("fast"); got != "Ninja" {
		t.Errorf("fast = %q", got)
	}
}

func TestDefault(t *testing.T) {
	if got := Default("windows"); got != "Visual Studio 17 2022" {
		t.Errorf("windows default = %q", got)
	}
	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		if got := Default(goos); got != "Unix Makefiles" {
			t.Errorf("%s default = %q", goos, got)
		}
	}
}

func TestSelectPrecedence(t *testing.T) {
	m := NewMap(nil)

	if got := m.Select("ninja", "xcode", "linux"); got != "Ninja" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := m.Select("", "xcode", "linux"); got != "Xcode" {
		t.Errorf("config should win over default, got %q", got)
	}
	if got := m.Select("", "", "windows"); got != "Visual Studio 17 2022" {
		t.Errorf("default = %q", got)
	}
}

func TestKnownAndIsCustom(t *testing.T) {
	m := NewMap([]config.GeneratorDefinition{
		{Name: "custom", Value: "Ninja"},
		{Name: "make", Value: "Unix Makefiles"},
	})

	known := m.Known()
	found := false
	for i, name := range known {
		if name == "custom" {
			found = true
		}
		if i > 0 && known[i-1] > name {
			t.Errorf("Known() not sorted: %v", known)
		}
	}
	if !found {
		t.Errorf("Known() should include custom, got %v", known)
	}

	if !m.IsCustom("custom") {
		t.Error("custom should be custom")
	}
	if m.IsCustom("make") {
		t.Error("make is built-in even when redefined")
	}
}

func TestIsMultiConfig(t *testing.T) {
	tests := []struct {
		gen  string
		want bool
	}{
		{"Visual Studio 17 2022", true},
		{"Xcode", true},
		{"Ninja Multi-Config", true},
		{"Ninja", false},
		{"Unix Makefiles", false},
	}
	for _, tt := range tests {
		if got := IsMultiConfig(tt.gen); got != tt.want {
			t.Errorf("IsMultiConfig(%q) = %v, want %v", tt.gen, got, tt.want)
		}
	}
}
