package checks

import (
	"context"
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the state of the report bucket.
type StorageReport struct {
	Bucket  string `json:"bucket"`
	Exists  bool   `json:"exists"`
	Prefix  string `json:"prefix"`
	Reports int    `json:"reports"`
	Status  string `json:"status"` // "ok", "missing"
}

// CheckStorage verifies that the bucket exists and counts the published reports.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Prefix: prefix, Status: "missing"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return report, nil
	}
	report.Exists = true
	report.Status = "ok"

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		report.Reports++
	}

	return report, nil
}

// FixStorage creates the bucket.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
