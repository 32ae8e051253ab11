package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ecfilm/catalog-api/internal/config"
)

// ObjectStore is the slice of the object store the file services depend on.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	BuildKey(folder, field, filename string) string
}

// Internal adapter interface so tests can run without a MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}

// Client stores catalog files in a MinIO (or S3-compatible) bucket.
type Client struct {
	api       minioAPI
	bucket    string
	publicURL string
}

var _ ObjectStore = (*Client)(nil)

// NewClient dials the object store and ensures the bucket exists.
func NewClient(ctx context.Context, cfg config.Storage) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return NewClientWithAPI(ctx, minioClientWrapper{c: mc}, cfg.Bucket, publicURL)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket, publicURL string) (*Client, error) {
	c := &Client{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}

	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// BuildKey derives the object key for a record's file: folder per record,
// field name plus timestamp so successive uploads never collide, original
// extension preserved.
func (c *Client) BuildKey(folder, field, filename string) string {
	folder = strings.ReplaceAll(strings.TrimSpace(folder), " ", "_")
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%s_%d%s", folder, field, time.Now().UnixNano(), ext)
}

// Upload stores the object and returns its public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := c.api.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key), nil
}

// Delete removes the object from the bucket.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.api.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
