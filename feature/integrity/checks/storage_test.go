package checks

import (
	"context"
	"testing"

	"github.com/hanneshbsrt/fehlmengen/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckStorage(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "fehlmengen").Return(false, nil)

		report, err := CheckStorage(context.Background(), mockClient, "fehlmengen", "reports/")
		require.NoError(t, err)
		assert.False(t, report.Exists)
		assert.Equal(t, "missing", report.Status)
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "fehlmengen").Return(false, assert.AnError)

		_, err := CheckStorage(context.Background(), mockClient, "fehlmengen", "reports/")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Counts Reports", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "fehlmengen").Return(true, nil)

		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "reports/ergebnis_20300101_080000.xlsx"}
		ch <- minio.ObjectInfo{Key: "reports/ergebnis_20300102_080000.csv"}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "fehlmengen", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "reports/"
		})).Return((<-chan minio.ObjectInfo)(ch))

		report, err := CheckStorage(context.Background(), mockClient, "fehlmengen", "reports/")
		require.NoError(t, err)
		assert.Equal(t, "ok", report.Status)
		assert.Equal(t, 2, report.Reports)
	})
}

func TestFixStorage(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("MakeBucket", mock.Anything, "fehlmengen", minio.MakeBucketOptions{Region: "eu-central-1"}).Return(nil)

	err := FixStorage(context.Background(), mockClient, "fehlmengen", "eu-central-1", zap.NewNop())
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "MakeBucket", 1)
}
