package minio

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"actuarial-data-service/internal/config"
)

// MinioClient wraps the MinIO client with dataset upload functionality.
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

// NewMinioClient initializes a MinIO client and makes sure the dataset bucket
// exists.
func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		slog.Warn("invalid MinIO secure flag, defaulting to false", "error", err)
		isSecure = false
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	mc := &MinioClient{client: minioClient, config: cfg}
	if err := mc.ensureBucket(ctx, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket %s: %w", cfg.Bucket, err)
	}

	slog.Info("connected to MinIO", "endpoint", endpoint, "bucket", cfg.Bucket)
	return mc, nil
}

func (mc *MinioClient) ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := mc.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if exists {
		return nil
	}
	if err := mc.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: mc.config.MinioLocation}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}
	slog.Info("bucket created", "bucket", bucketName)
	return nil
}

// UploadDataset uploads one exported table file under the configured prefix
// and returns the object key.
func (mc *MinioClient) UploadDataset(ctx context.Context, filePath string) (string, error) {
	objectKey := mc.config.Prefix + filepath.Base(filePath)

	info, err := mc.client.FPutObject(ctx, mc.config.Bucket, objectKey, filePath, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filePath, err)
	}

	slog.Info("uploaded dataset",
		"bucket", mc.config.Bucket,
		"key", objectKey,
		"size_bytes", info.Size)
	return objectKey, nil
}

// UploadDatasets uploads every file and returns the object keys in input
// order. The first failure aborts the batch.
func (mc *MinioClient) UploadDatasets(ctx context.Context, filePaths []string) ([]string, error) {
	keys := make([]string, 0, len(filePaths))
	for _, path := range filePaths {
		key, err := mc.UploadDataset(ctx, path)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
