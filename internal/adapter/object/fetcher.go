// Package object fetches survey packages from S3-compatible storage.
package object

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/luforestal/school-inventory/internal/config"
)

// Fetcher downloads package objects from an S3-compatible endpoint (MinIO,
// AWS S3, ...), which is how hosted-notebook users keep their survey data.
type Fetcher struct {
	client *minio.Client
	logger *slog.Logger
}

// NewFetcher connects to the endpoint configured via the MINIO_* variables.
func NewFetcher(cfg *config.Config, logger *slog.Logger) (*Fetcher, error) {
	if !cfg.ObjectStoreConfigured() {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	logger.Debug("object storage client ready", "endpoint", cfg.MinioEndpoint)
	return &Fetcher{client: client, logger: logger}, nil
}

// Fetch downloads the object at an s3://bucket/key URI into destDir and
// returns the local file path.
func (f *Fetcher) Fetch(ctx context.Context, uri, destDir string) (string, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return "", err
	}

	local := filepath.Join(destDir, path.Base(key))
	if err := f.client.FGetObject(ctx, bucket, key, local, minio.GetObjectOptions{}); err != nil {
		return "", fmt.Errorf("fetch %s: %w", uri, err)
	}

	f.logger.Info("package downloaded", "uri", uri, "path", local)
	return local, nil
}

// ParseURI splits an s3://bucket/key URI into bucket and key.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URI must be s3://bucket/key, got %s", uri)
	}
	return bucket, key, nil
}
