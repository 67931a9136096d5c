package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/google/uuid"
)

func TestNewHashesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	app := filepath.ToSlash(filepath.Join(dir, "app"))
	if err := os.WriteFile(filepath.FromSlash(app), []byte("binary"), 0755); err != nil {
		t.Fatal(err)
	}

	m, err := New("MyApp", "1.0.0", "Release", "Ninja", []fileapi.BuildArtifact{
		{Name: "app", Kind: fileapi.KindExecutable, Path: app},
		{Name: "core", Kind: fileapi.KindStaticLibrary, Path: filepath.ToSlash(filepath.Join(dir, "libcore.a"))},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if len(m.Artifacts) != 2 {
		t.Fatalf("got %d artifacts", len(m.Artifacts))
	}
	if _, err := uuid.Parse(m.BuildID); err != nil {
		t.Errorf("build id %q: %v", m.BuildID, err)
	}
	// sha256("binary")
	want := "9a3a45d01531a20e89ac6ae10b0b0beb0492acd7216a368aa062d1a5fecaf9cd"
	if m.Artifacts[0].SHA256 != want {
		t.Errorf("sha256 = %s, want %s", m.Artifacts[0].SHA256, want)
	}
	if m.Artifacts[0].Size != 6 {
		t.Errorf("size = %d, want 6", m.Artifacts[0].Size)
	}
	if m.Artifacts[1].SHA256 != "" {
		t.Error("missing file should have no hash")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)

	m := &Manifest{
		Version:       1,
		Project:       "MyApp",
		Configuration: "Debug",
		Generator:     "Unix Makefiles",
		Artifacts: []Artifact{
			{Name: "app", Kind: fileapi.KindExecutable, Path: "/b/app", SHA256: "abc", Size: 3},
		},
	}
	if err := Save(path, m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Configuration != "Debug" || len(got.Artifacts) != 1 || got.Artifacts[0].Kind != fileapi.KindExecutable {
		t.Errorf("round trip mismatch: %+v", got)
	}

	arts := got.BuildArtifacts()
	if len(arts) != 1 || arts[0].Path != "/b/app" {
		t.Errorf("BuildArtifacts = %+v", arts)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing manifest") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `version: 1
configuration: Release
artifacts:
  - name: objs
    kind: OBJECT_LIBRARY
    path: /b/objs.o
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unexpected kind 'OBJECT_LIBRARY'") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSaveToMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "missing", FileName), &Manifest{Version: 1})
	if err == nil {
		t.Fatal("expected error writing to non-existent directory")
	}
}

func TestValidate(t *testing.T) {
	m := &Manifest{
		Version: 2,
		BuildID: "not-a-uuid",
		Artifacts: []Artifact{
			{Kind: fileapi.KindExecutable},
		},
	}
	errs := Validate(m)
	joined := strings.Join(errs, "\n")
	for _, want := range []string{"unsupported version 2", "invalid build_id 'not-a-uuid'", "'configuration' is required", "artifact[0]: 'name' is required", "'path' is required"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}
