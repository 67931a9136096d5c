package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioProvider uploads to MinIO or any S3-compatible endpoint.
type MinioProvider struct {
	client  *minio.Client
	bucket  string
	prefix  string
	checked bool
}

// NewMinioProvider creates an unconfigured MinioProvider.
func NewMinioProvider() *MinioProvider {
	return &MinioProvider{}
}

func (m *MinioProvider) Name() string {
	return "minio"
}

// Configure creates the client. Required settings: endpoint, access_key,
// secret_key, bucket. Optional: secure (default true), region
// (default us-east-1), prefix.
func (m *MinioProvider) Configure(settings map[string]any) error {
	endpoint, ok := stringSetting(settings, "endpoint")
	if !ok {
		return fmt.Errorf("minio: endpoint is required")
	}
	accessKey, ok := stringSetting(settings, "access_key")
	if !ok {
		return fmt.Errorf("minio: access_key is required")
	}
	secretKey, ok := stringSetting(settings, "secret_key")
	if !ok {
		return fmt.Errorf("minio: secret_key is required")
	}
	bucket, ok := stringSetting(settings, "bucket")
	if !ok {
		return fmt.Errorf("minio: bucket is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: boolSetting(settings, "secure", true),
		Region: stringSettingOr(settings, "region", "us-east-1"),
	})
	if err != nil {
		return fmt.Errorf("minio: failed to create client: %w", err)
	}

	m.client = client
	m.bucket = bucket
	m.prefix = strings.Trim(stringSettingOr(settings, "prefix", ""), "/")
	m.checked = false
	return nil
}

// ObjectName returns the object key for remotePath under the prefix.
func (m *MinioProvider) ObjectName(remotePath string) string {
	remotePath = strings.TrimLeft(strings.ReplaceAll(remotePath, "\\", "/"), "/")
	if m.prefix == "" {
		return remotePath
	}
	return path.Join(m.prefix, remotePath)
}

// Upload streams reader to the bucket. The bucket is checked once per
// configuration, on the first upload.
func (m *MinioProvider) Upload(ctx context.Context, reader io.Reader, remotePath string) error {
	if m.client == nil {
		return fmt.Errorf("minio: provider not configured")
	}

	if !m.checked {
		exists, err := m.client.BucketExists(ctx, m.bucket)
		if err != nil {
			return fmt.Errorf("minio: failed to check bucket existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("minio: bucket %s does not exist", m.bucket)
		}
		m.checked = true
	}

	objectName := m.ObjectName(remotePath)
	// -1 lets the client stream with multipart uploads.
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("minio: failed to upload to %s: %w", objectName, err)
	}
	return nil
}
