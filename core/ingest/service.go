package ingest

import (
	"context"
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service turns uploaded files into engine records using the configured
// parsers, schemas and the parse cache.
type Service struct {
	cfg     Config
	cache   *Cache
	logger  *zap.Logger
	parsers map[string]Parser
	schemas map[string]Schema
}

// NewService validates the configuration and builds one parser and schema
// per dataset.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	s := &Service{
		cfg:     cfg,
		cache:   NewCache(cfg.CacheTTL()),
		logger:  logger,
		parsers: make(map[string]Parser),
		schemas: make(map[string]Schema),
	}

	for _, dataset := range []string{DatasetStock, DatasetOrders, DatasetOverrides, DatasetIdentifiers} {
		p, err := NewParser(cfg.Format(dataset))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dataset, err)
		}
		schema, err := SchemaFor(dataset)
		if err != nil {
			return nil, err
		}
		schema, err = schema.WithOverrides(cfg.Columns(dataset))
		if err != nil {
			return nil, err
		}
		s.parsers[dataset] = p
		s.schemas[dataset] = schema
	}

	return s, nil
}

// Cache returns the parse cache.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Config returns the ingest configuration.
func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) table(ctx context.Context, dataset string, data []byte) (*Table, error) {
	p := s.parsers[dataset]
	t, hit, err := s.cache.GetOrParse(ctx, p, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataset, err)
	}
	s.logger.Debug("Parsed dataset",
		zap.String("dataset", dataset),
		zap.String("parser", p.Name()),
		zap.Int("rows", t.Len()),
		zap.Bool("cached", hit),
	)
	return t, nil
}

// Stock parses a stock file.
func (s *Service) Stock(ctx context.Context, data []byte) ([]reconcile.StockRecord, error) {
	t, err := s.table(ctx, DatasetStock, data)
	if err != nil {
		return nil, err
	}
	return DecodeStock(t, s.schemas[DatasetStock])
}

// Overrides parses an override file.
func (s *Service) Overrides(ctx context.Context, data []byte) ([]reconcile.OverrideRecord, error) {
	t, err := s.table(ctx, DatasetOverrides, data)
	if err != nil {
		return nil, err
	}
	return DecodeOverrides(t, s.schemas[DatasetOverrides])
}

// Orders parses an open order file.
func (s *Service) Orders(ctx context.Context, data []byte) ([]reconcile.OrderLine, error) {
	t, err := s.table(ctx, DatasetOrders, data)
	if err != nil {
		return nil, err
	}
	return DecodeOrderLines(t, s.schemas[DatasetOrders])
}

// Identifiers parses an identifier list file.
func (s *Service) Identifiers(ctx context.Context, data []byte) ([]string, error) {
	t, err := s.table(ctx, DatasetIdentifiers, data)
	if err != nil {
		return nil, err
	}
	return DecodeIdentifiers(t, s.schemas[DatasetIdentifiers])
}

// OrdersFromDB reads open orders from the configured table.
func (s *Service) OrdersFromDB(ctx context.Context, db *gorm.DB) ([]reconcile.OrderLine, error) {
	if s.cfg.OrdersTable == "" {
		return nil, fmt.Errorf("orders: %w: no orders table configured", ErrUnreadable)
	}
	src := &SQLSource{DB: db, Table: s.cfg.OrdersTable}
	t, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	s.logger.Debug("Loaded orders from database", zap.String("table", s.cfg.OrdersTable), zap.Int("rows", t.Len()))
	return DecodeOrderLines(t, s.schemas[DatasetOrders])
}

// Schema returns the effective schema of a dataset, including header overrides.
func (s *Service) Schema(dataset string) Schema {
	return s.schemas[dataset]
}
