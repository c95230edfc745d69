package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"studenthub/internal/config"
)

// presignExpiry bounds how long a download redirect stays valid.
const presignExpiry = 15 * time.Minute

// minioStore implements BinaryStore against an S3-compatible backend (MinIO,
// AWS S3). Locators are object keys with the same type-partitioned shape as
// the local backend; download redirects use presigned GET URLs.
// Safe for concurrent use by multiple goroutines.
type minioStore struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates an S3-compatible BinaryStore. It validates connectivity and
// ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (BinaryStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &minioStore{client: cli, bucket: cfg.Bucket}, nil
}

// Save streams the binary to the bucket under a type-partitioned key.
func (m *minioStore) Save(ctx context.Context, materialType, originalFilename string, r io.Reader, size int64) (string, error) {
	if r == nil {
		return "", fmt.Errorf("reader is nil")
	}
	key := path.Join(DirFor(materialType), StoredName(originalFilename))

	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
		UserMetadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

// Remove deletes the object behind the locator. RemoveObject succeeds for
// keys that are already gone, keeping deletes idempotent.
func (m *minioStore) Remove(ctx context.Context, locator string) error {
	if locator == "" {
		return nil
	}
	return m.client.RemoveObject(ctx, m.bucket, locator, minio.RemoveObjectOptions{})
}

// ResolveURL returns a time-limited presigned GET URL for the object.
func (m *minioStore) ResolveURL(ctx context.Context, locator string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, locator, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return u.String(), nil
}
