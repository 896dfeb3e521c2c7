package integrity

import (
	"context"

	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/storage"
	"github.com/hanneshbsrt/fehlmengen/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options are the collaborators checked by the service. Every field is optional.
type Options struct {
	Client storage.Client
	Bucket string
	Region string
	Prefix string

	DB          *gorm.DB
	OrdersTable string
	Schema      ingest.Schema

	Extractor *ocr.Extractor
}

// Service handles integrity checks.
type Service struct {
	opts   Options
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options, logger *zap.Logger) *Service {
	if len(opts.Schema.Fields) == 0 {
		opts.Schema = ingest.OrderSchema()
	}
	return &Service{
		opts:   opts,
		logger: logger,
	}
}

// CheckStorage reports whether the report bucket exists.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.opts.Client, s.opts.Bucket, s.opts.Prefix)
}

// FixStorage creates the report bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixStorage(ctx, s.opts.Client, s.opts.Bucket, s.opts.Region, s.logger)
}

// CheckDatabase verifies the orders table against the orders schema.
func (s *Service) CheckDatabase() (*checks.DatabaseReport, error) {
	return checks.CheckDatabase(s.opts.DB, s.opts.OrdersTable, s.opts.Schema)
}

// CheckOCR reports the tesseract version.
func (s *Service) CheckOCR(ctx context.Context) (*checks.OCRReport, error) {
	return checks.CheckOCR(ctx, s.opts.Extractor)
}
