package shortage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/report"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrMissingInput is returned when a required dataset was not supplied.
	ErrMissingInput = errors.New("missing input")
	// ErrLabelsDisabled is returned when label recognition is not configured.
	ErrLabelsDisabled = errors.New("label recognition is not configured")
	// ErrPublishingDisabled is returned when no report store is configured.
	ErrPublishingDisabled = errors.New("report publishing is not configured")
)

// Input are the raw datasets of one reconciliation run.
type Input struct {
	Stock     []byte
	Orders    []byte
	Overrides []byte

	// Identifiers are requested explicitly, in order.
	Identifiers []string
	// IdentifierFile is an identifier list file, used when Identifiers is empty.
	IdentifierFile []byte
}

// Output is a rendered report.
type Output struct {
	Format      string
	ContentType string
	FileName    string
	Data        []byte
	// Published is the report name in the object store, empty when not published.
	Published string
}

// LabelResult is the outcome of the first, automatic step of label recognition.
type LabelResult struct {
	Candidates []ocr.Candidate `json:"candidates"`
	// Accepted are identifiers read with enough confidence to use directly.
	Accepted []string `json:"accepted"`
	// Review are candidates that need a human decision.
	Review []ocr.Candidate `json:"review"`
}

// Service reconciles uploaded datasets and renders reports.
type Service struct {
	ingest    *ingest.Service
	extractor *ocr.Extractor
	publisher *report.Publisher
	db        *gorm.DB
	engine    *reconcile.Engine
	cfg       reconcile.Config
	reportCfg report.Config
	logger    *zap.Logger
}

// NewService creates a shortage service. extractor, publisher and db are optional.
func NewService(ingestSvc *ingest.Service, extractor *ocr.Extractor, publisher *report.Publisher, db *gorm.DB, cfg reconcile.Config, reportCfg report.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ingest:    ingestSvc,
		extractor: extractor,
		publisher: publisher,
		db:        db,
		engine:    reconcile.NewEngine(cfg),
		cfg:       cfg,
		reportCfg: reportCfg,
		logger:    logger,
	}
}

// ReportConfig returns the report configuration.
func (s *Service) ReportConfig() report.Config {
	return s.reportCfg
}

// Reconcile parses the datasets and runs the engine. Without explicit
// identifiers every stock identifier is reported in file order. Without an
// orders file the configured database table is read instead.
func (s *Service) Reconcile(ctx context.Context, in Input) (*reconcile.Result, error) {
	if len(in.Stock) == 0 {
		return nil, fmt.Errorf("%w: stock file", ErrMissingInput)
	}

	stockRecords, err := s.ingest.Stock(ctx, in.Stock)
	if err != nil {
		return nil, err
	}
	stock, err := reconcile.NewStockCatalog(stockRecords, s.cfg.CatalogOptions())
	if err != nil {
		return nil, err
	}

	var overrides *reconcile.OverrideCatalog
	if len(in.Overrides) > 0 {
		records, err := s.ingest.Overrides(ctx, in.Overrides)
		if err != nil {
			return nil, err
		}
		overrides, err = reconcile.NewOverrideCatalog(records, s.cfg.CatalogOptions())
		if err != nil {
			return nil, err
		}
	}

	lines, err := s.orders(ctx, in.Orders)
	if err != nil {
		return nil, err
	}
	ledger := reconcile.NewOrderLedger(lines, s.cfg.LedgerOptions())

	ids := in.Identifiers
	if len(ids) == 0 && len(in.IdentifierFile) > 0 {
		ids, err = s.ingest.Identifiers(ctx, in.IdentifierFile)
		if err != nil {
			return nil, err
		}
	}
	if len(ids) == 0 {
		ids = stock.Identifiers()
	}

	result, err := s.engine.Run(ctx, ids, stock, overrides, ledger)
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		s.logger.Warn("Unusable value in order data",
			zap.String("identifier", w.Identifier),
			zap.String("field", w.Field),
			zap.String("value", w.Value),
			zap.String("reason", w.Reason),
		)
	}
	s.logger.Info("Reconciliation finished",
		zap.Int("identifiers", result.Summary.Total),
		zap.Int("in_stock", result.Summary.InStock),
		zap.Int("on_order", result.Summary.OnOrder),
		zap.Int("partially_delivered", result.Summary.PartiallyDelivered),
		zap.Int("order_lines", ledger.Len()),
		zap.Int("orders", ledger.Orders()),
	)

	return result, nil
}

func (s *Service) orders(ctx context.Context, data []byte) ([]reconcile.OrderLine, error) {
	if len(data) > 0 {
		return s.ingest.Orders(ctx, data)
	}
	if s.db != nil && s.ingest.Config().OrdersTable != "" {
		return s.ingest.OrdersFromDB(ctx, s.db)
	}
	return nil, fmt.Errorf("%w: orders file", ErrMissingInput)
}

// Render renders the result and publishes it when configured.
func (s *Service) Render(ctx context.Context, result *reconcile.Result, format string) (*Output, error) {
	if format == "" {
		format = s.reportCfg.Format
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, format, result, s.reportCfg); err != nil {
		return nil, err
	}

	out := &Output{
		Format:      format,
		ContentType: report.ContentType(format),
		FileName:    report.FileName(format),
		Data:        buf.Bytes(),
	}

	if s.reportCfg.Publish && s.publisher != nil {
		name, err := s.publisher.Publish(ctx, format, out.Data)
		if err != nil {
			return nil, err
		}
		out.Published = name
		s.logger.Info("Report published", zap.String("name", name))

		if s.reportCfg.Keep > 0 {
			// A failed cleanup does not fail the published report
			if n, err := s.publisher.Prune(ctx, s.reportCfg.Keep); err != nil {
				s.logger.Warn("Pruning old reports failed", zap.Int("removed", n), zap.Error(err))
			} else if n > 0 {
				s.logger.Info("Old reports pruned", zap.Int("removed", n))
			}
		}
	}
	return out, nil
}

// ExtractLabels recognises identifiers on the given images and splits them
// into accepted identifiers and candidates needing review.
func (s *Service) ExtractLabels(ctx context.Context, paths []string) (*LabelResult, error) {
	if s.extractor == nil {
		return nil, ErrLabelsDisabled
	}
	candidates, err := s.extractor.ExtractAll(ctx, paths)
	if err != nil {
		return nil, err
	}
	threshold := ocr.ThresholdConfirmer{MinConfidence: s.extractor.MinConfidence()}
	accepted, review := threshold.Split(candidates)

	s.logger.Info("Labels recognised",
		zap.Int("images", len(paths)),
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(accepted)),
	)
	return &LabelResult{
		Candidates: nonNil(candidates),
		Accepted:   accepted,
		Review:     nonNil(review),
	}, nil
}

// PurgeCache drops every cached parse and returns the number removed.
func (s *Service) PurgeCache() int {
	return s.ingest.Cache().Purge()
}

// FetchReport downloads a published report.
func (s *Service) FetchReport(ctx context.Context, name string) ([]byte, error) {
	if s.publisher == nil {
		return nil, ErrPublishingDisabled
	}
	return s.publisher.Fetch(ctx, name)
}

// RemoveReport deletes a published report.
func (s *Service) RemoveReport(ctx context.Context, name string) error {
	if s.publisher == nil {
		return ErrPublishingDisabled
	}
	return s.publisher.Remove(ctx, name)
}

// ListReports lists published reports, newest first.
func (s *Service) ListReports(ctx context.Context) ([]string, error) {
	if s.publisher == nil {
		return nil, ErrPublishingDisabled
	}
	return s.publisher.List(ctx)
}

func nonNil(c []ocr.Candidate) []ocr.Candidate {
	if c == nil {
		return []ocr.Candidate{}
	}
	return c
}
