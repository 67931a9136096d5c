package engine

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bianoble/buildctl/internal/config"
	"github.com/bianoble/buildctl/internal/manifest"
	"github.com/bianoble/buildctl/internal/upload"
)

// OpenProvider creates and configures the upload provider named in the
// publish settings.
func OpenProvider(p config.Publish) (upload.Provider, error) {
	if !p.Enabled() {
		return nil, fmt.Errorf("publishing is not configured (set publish.endpoint and publish.bucket)")
	}
	name := p.Provider
	if name == "" {
		name = "minio"
	}

	provider, err := upload.NewProvider(name)
	if err != nil {
		return nil, err
	}
	if err := provider.Configure(ProviderSettings(p)); err != nil {
		return nil, err
	}
	return provider, nil
}

// ProviderSettings converts publish config into provider settings.
func ProviderSettings(p config.Publish) map[string]any {
	settings := map[string]any{
		"endpoint":   p.Endpoint,
		"bucket":     p.Bucket,
		"access_key": p.AccessKey,
		"secret_key": p.SecretKey,
		"prefix":     p.Prefix,
	}
	if p.Region != "" {
		settings["region"] = p.Region
	}
	if p.Secure != nil {
		settings["secure"] = *p.Secure
	}
	return settings
}

// PublishEngine uploads manifest artifacts through a provider.
type PublishEngine struct {
	Provider upload.Provider
}

// ObjectPath returns the remote path of a file for a manifest:
// <project>/<version>/<configuration>/<file name>.
func ObjectPath(m *manifest.Manifest, fileName string) string {
	parts := []string{}
	for _, p := range []string{m.Project, m.ProjectVersion, m.Configuration} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fileName)
	return path.Join(parts...)
}

// Publish uploads each artifact that exists on disk, then the manifest
// itself. Missing artifacts are skipped; per-artifact failures are
// collected and do not stop the run. Artifacts whose file names collide
// are refused before anything is uploaded.
func (e *PublishEngine) Publish(ctx context.Context, m *manifest.Manifest, manifestPath string) (*PublishResult, error) {
	names, err := fileNames(m)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{Provider: e.Provider.Name()}
	for i, a := range m.Artifacts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		object := ObjectPath(m, names[i])
		err := e.uploadFile(ctx, filepath.FromSlash(a.Path), object)
		switch {
		case err == nil:
			result.Uploaded = append(result.Uploaded, UploadedArtifact{Name: a.Name, Path: a.Path, Object: object})
		case os.IsNotExist(err):
			result.Skipped = append(result.Skipped, a.Path)
		default:
			result.Errors = append(result.Errors, ArtifactError{Artifact: a.Name, Err: err})
		}
	}

	if manifestPath != "" {
		object := ObjectPath(m, manifest.FileName)
		if err := e.uploadFile(ctx, manifestPath, object); err != nil {
			result.Errors = append(result.Errors, ArtifactError{Artifact: manifest.FileName, Err: err})
		} else {
			result.Uploaded = append(result.Uploaded, UploadedArtifact{Name: manifest.FileName, Path: filepath.ToSlash(manifestPath), Object: object})
		}
	}

	return result, nil
}

func (e *PublishEngine) uploadFile(ctx context.Context, localPath, object string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return e.Provider.Upload(ctx, f, object)
}
