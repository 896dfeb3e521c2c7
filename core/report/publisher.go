package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/hanneshbsrt/fehlmengen/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var (
	// ErrInvalidName is returned for report names that are not plain file names.
	ErrInvalidName = errors.New("invalid report name")
	// ErrNotFound is returned when a published report does not exist.
	ErrNotFound = errors.New("report not found")
)

// Publisher stores rendered reports in the object store.
type Publisher struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
	newID  func() string
}

// NewPublisher creates a publisher writing below prefix in bucket.
func NewPublisher(client storage.Client, bucket, prefix string) *Publisher {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Publisher{client: client, bucket: bucket, prefix: prefix, now: time.Now, newID: shortID}
}

func shortID() string {
	return uuid.NewString()[:8]
}

// Name returns a unique report name, e.g. ergebnis_20300101_120000_250_1a2b3c4d.xlsx.
// The timestamp runs to the millisecond so names sort by publish time.
func (p *Publisher) Name(format string) string {
	t := p.now()
	return fmt.Sprintf("ergebnis_%s_%03d_%s.%s", t.Format("20060102_150405"), t.Nanosecond()/int(time.Millisecond), p.newID(), normalize(format))
}

// Publish uploads a rendered report and returns its name.
func (p *Publisher) Publish(ctx context.Context, format string, data []byte) (string, error) {
	name := p.Name(format)
	_, err := p.client.PutObject(ctx, p.bucket, p.prefix+name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType(format),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", name, err)
	}
	return name, nil
}

func validName(name string) error {
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Fetch downloads a published report by name.
func (p *Publisher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	obj, err := p.client.GetObject(ctx, p.bucket, p.prefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, p.wrap(name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, p.wrap(name, err)
	}
	return data, nil
}

// List returns the names of all published reports, newest first.
func (p *Publisher) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{Prefix: p.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		names = append(names, strings.TrimPrefix(obj.Key, p.prefix))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Remove deletes a published report. Removing a missing report is not an error.
func (p *Publisher) Remove(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := p.client.RemoveObject(ctx, p.bucket, p.prefix+name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove report %s: %w", name, err)
	}
	return nil
}

// Prune deletes all but the keep newest reports and returns how many were
// removed. keep <= 0 keeps everything.
func (p *Publisher) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	names, err := p.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(names) <= keep {
		return 0, nil
	}
	stale := names[keep:]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, name := range stale {
		objectsCh <- minio.ObjectInfo{Key: p.prefix + name}
	}
	close(objectsCh)

	var errs []error
	for rErr := range p.client.RemoveObjects(ctx, p.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("%s: %w", rErr.ObjectName, rErr.Err))
	}
	if len(errs) > 0 {
		return len(stale) - len(errs), fmt.Errorf("failed to prune reports: %w", errors.Join(errs...))
	}
	return len(stale), nil
}

func (p *Publisher) wrap(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fmt.Errorf("failed to fetch report %s: %w", name, err)
}
