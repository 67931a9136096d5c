package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/bianoble/buildctl/internal/manifest"
)

func TestStageAfterBuild(t *testing.T) {
	e := newTestEngine(t, newFakeRunner())
	res, err := e.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	m, err := manifest.Load(res.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	staged, err := e.Stage(m)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if len(staged.Staged) != 2 {
		t.Fatalf("staged = %v", staged.Staged)
	}
	data, err := os.ReadFile(filepath.Join(staged.Dir, "Release", "app"))
	if err != nil || string(data) != "app-binary" {
		t.Errorf("staged app = %q, %v", data, err)
	}
	if e.OutputSize() == 0 {
		t.Error("output size should be non-zero after staging")
	}

	again, err := e.Stage(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Staged) != 0 || len(again.Unchanged) != 2 {
		t.Errorf("second stage = %+v", again)
	}
}

func TestStageRejectsModifiedArtifact(t *testing.T) {
	e := newTestEngine(t, newFakeRunner())
	res, err := e.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	m, err := manifest.Load(res.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(res.BuildDir, "bin", "app"), []byte("tampered"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err = e.Stage(m)
	var artErr ArtifactError
	if !errors.As(err, &artErr) || artErr.Artifact != "app" {
		t.Errorf("expected ArtifactError for app, got %v", err)
	}
}

func TestStageSkipsUnhashed(t *testing.T) {
	e := newTestEngine(t, &fakeRunner{})
	m := &manifest.Manifest{Version: 1, Configuration: "Debug", Artifacts: []manifest.Artifact{
		{Name: "ghost", Path: "/nowhere/ghost"},
	}}

	res, err := e.Stage(m)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if len(res.Skipped) != 1 {
		t.Errorf("skipped = %v", res.Skipped)
	}
}

func TestOutputSizeMissingDir(t *testing.T) {
	e := newTestEngine(t, &fakeRunner{})
	if e.OutputSize() != 0 {
		t.Error("missing output dir should report 0")
	}
	if _, err := os.Stat(e.OutputDir()); !os.IsNotExist(err) {
		t.Error("OutputSize must not create the directory")
	}
}

// sameNameManifest has two libraries with one file name in different
// directories of a single configuration.
func sameNameManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.New("MyApp", "1.0.0", "Release", "Ninja", []fileapi.BuildArtifact{
		{Name: "util", Kind: fileapi.KindStaticLibrary, Path: writeArtifact(t, t.TempDir(), "libutil.a", "core util")},
		{Name: "plugin_util", Kind: fileapi.KindStaticLibrary, Path: writeArtifact(t, t.TempDir(), "libutil.a", "plugin util")},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestStageRejectsFileNameCollision(t *testing.T) {
	e := newTestEngine(t, newFakeRunner())

	_, err := e.Stage(sameNameManifest(t))
	var artErr ArtifactError
	if !errors.As(err, &artErr) || artErr.Artifact != "plugin_util" {
		t.Fatalf("expected ArtifactError for plugin_util, got %v", err)
	}
	if !strings.Contains(err.Error(), "collides with artifact util") {
		t.Errorf("error should name the other artifact: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(e.OutputDir(), "Release", "libutil.a")); !os.IsNotExist(statErr) {
		t.Error("nothing should be staged when names collide")
	}
}

func TestFileNamesIgnoreCase(t *testing.T) {
	m := &manifest.Manifest{Artifacts: []manifest.Artifact{
		{Name: "app", Path: "/b/Release/App.exe"},
		{Name: "tool", Path: "/b/tools/app.EXE"},
	}}
	if _, err := fileNames(m); err == nil {
		t.Error("names differing only in case should collide")
	}

	m.Artifacts[1].Path = "/b/tools/tool.exe"
	names, err := fileNames(m)
	if err != nil {
		t.Fatalf("fileNames: %v", err)
	}
	if names[0] != "App.exe" || names[1] != "tool.exe" {
		t.Errorf("names = %v", names)
	}
}
