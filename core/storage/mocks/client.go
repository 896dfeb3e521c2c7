// Package mocks provides a testify mock of storage.Client.
package mocks

import (
	"context"
	"io"

	"github.com/hanneshbsrt/fehlmengen/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

var _ storage.Client = (*Client)(nil)

// Client is a mock implementation of storage.Client.
// Channel returning methods fall back to a closed channel when no value was
// configured, so a bare Return(nil) reads as an empty listing.
type Client struct {
	mock.Mock
}

// Listing returns a closed channel carrying one object per key.
func Listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	info, _ := args.Get(0).(minio.UploadInfo)
	return info, args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	if ch, ok := m.Called(ctx, bucketName, opts).Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	return Listing()
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return m.Called(ctx, bucketName, objectName, opts).Error(0)
}

func (m *Client) RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	if ch, ok := m.Called(ctx, bucketName, objectsCh, opts).Get(0).(<-chan minio.RemoveObjectError); ok {
		return ch
	}
	ch := make(chan minio.RemoveObjectError)
	close(ch)
	return ch
}
