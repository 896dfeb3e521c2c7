package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hanneshbsrt/fehlmengen/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(client *mocks.Client) *Publisher {
	p := NewPublisher(client, "reports-bucket", "reports")
	p.now = func() time.Time { return time.Date(2030, 1, 2, 15, 4, 5, 250*int(time.Millisecond), time.UTC) }
	p.newID = func() string { return "1a2b3c4d" }
	return p
}

func TestPublisher_Publish(t *testing.T) {
	client := new(mocks.Client)
	p := newTestPublisher(client)

	client.On("PutObject", mock.Anything, "reports-bucket", "reports/ergebnis_20300102_150405_250_1a2b3c4d.xlsx",
		mock.Anything, int64(4), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == ContentType(FormatXLSX)
		}),
	).Return(minio.UploadInfo{}, nil)

	name, err := p.Publish(context.Background(), "xlsx", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "ergebnis_20300102_150405_250_1a2b3c4d.xlsx", name)
	client.AssertExpectations(t)
}

func TestPublisher_PublishSameSecond(t *testing.T) {
	client := new(mocks.Client)
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPublisher(client, "reports-bucket", "reports")
	p.now = func() time.Time { return now }

	client.On("PutObject", mock.Anything, "reports-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	first, err := p.Publish(context.Background(), "xlsx", []byte("one"))
	require.NoError(t, err)
	second, err := p.Publish(context.Background(), "xlsx", []byte("two"))
	require.NoError(t, err)
	now = now.Add(900 * time.Millisecond)
	third, err := p.Publish(context.Background(), "xlsx", []byte("three"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
	assert.Greater(t, third, first)
	assert.Greater(t, third, second)
	assert.True(t, strings.HasPrefix(third, "ergebnis_20300101_120000_900_"), third)
	client.AssertNumberOfCalls(t, "PutObject", 3)
}

func TestPublisher_PublishError(t *testing.T) {
	client := new(mocks.Client)
	p := newTestPublisher(client)

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection refused"))

	_, err := p.Publish(context.Background(), "csv", []byte("a;b"))
	assert.ErrorContains(t, err, "connection refused")
}

func TestPublisher_Fetch(t *testing.T) {
	client := new(mocks.Client)
	p := newTestPublisher(client)

	client.On("GetObject", mock.Anything, "reports-bucket", "reports/ergebnis.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("a;b\n")), nil)
	client.On("GetObject", mock.Anything, "reports-bucket", "reports/missing.csv", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

	data, err := p.Fetch(context.Background(), "ergebnis.csv")
	require.NoError(t, err)
	assert.Equal(t, "a;b\n", string(data))

	_, err = p.Fetch(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, name := range []string{"", "../secret", "a/b.csv", ".env"} {
		_, err = p.Fetch(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestPublisher_List(t *testing.T) {
	client := new(mocks.Client)
	p := newTestPublisher(client)

	client.On("ListObjects", mock.Anything, "reports-bucket", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).
		Return(mocks.Listing("reports/ergebnis_20300101_080000.xlsx", "reports/ergebnis_20300102_080000.csv"))

	names, err := p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ergebnis_20300102_080000.csv", "ergebnis_20300101_080000.xlsx"}, names)
}

func TestPublisher_Remove(t *testing.T) {
	client := new(mocks.Client)
	p := newTestPublisher(client)

	client.On("RemoveObject", mock.Anything, "reports-bucket", "reports/ergebnis.csv", mock.Anything).Return(nil)

	require.NoError(t, p.Remove(context.Background(), "ergebnis.csv"))
	assert.ErrorIs(t, p.Remove(context.Background(), "../ergebnis.csv"), ErrInvalidName)
	client.AssertNumberOfCalls(t, "RemoveObject", 1)
}

func TestPublisher_Prune(t *testing.T) {
	listing := func() <-chan minio.ObjectInfo {
		return mocks.Listing(
			"reports/ergebnis_20300101_080000.xlsx",
			"reports/ergebnis_20300103_080000.xlsx",
			"reports/ergebnis_20300102_080000.xlsx",
		)
	}

	t.Run("KeepAll", func(t *testing.T) {
		client := new(mocks.Client)
		p := newTestPublisher(client)

		n, err := p.Prune(context.Background(), 0)
		require.NoError(t, err)
		assert.Zero(t, n)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RemovesOldest", func(t *testing.T) {
		client := new(mocks.Client)
		p := newTestPublisher(client)

		var removed []string
		client.On("ListObjects", mock.Anything, "reports-bucket", mock.Anything).Return(listing())
		client.On("RemoveObjects", mock.Anything, "reports-bucket", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
					removed = append(removed, obj.Key)
				}
			}).
			Return(nil)

		n, err := p.Prune(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"reports/ergebnis_20300102_080000.xlsx", "reports/ergebnis_20300101_080000.xlsx"}, removed)
	})

	t.Run("PartialFailure", func(t *testing.T) {
		client := new(mocks.Client)
		p := newTestPublisher(client)

		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "reports/ergebnis_20300101_080000.xlsx", Err: errors.New("access denied")}
		close(errCh)

		client.On("ListObjects", mock.Anything, "reports-bucket", mock.Anything).Return(listing())
		client.On("RemoveObjects", mock.Anything, "reports-bucket", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		n, err := p.Prune(context.Background(), 1)
		assert.ErrorContains(t, err, "access denied")
		assert.Equal(t, 1, n)
	})
}
