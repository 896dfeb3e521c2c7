package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var (
	// ErrUnsupportedFormat is returned for a format name without an adapter.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrUnreadable wraps every failure to turn input bytes into a Table.
	ErrUnreadable = errors.New("unreadable input")
)

// Parser turns the bytes of one uploaded file into a Table.
type Parser interface {
	// Name identifies the adapter ("csv", "xlsx").
	Name() string
	// Version changes whenever the parser or its settings would produce a
	// different table for the same bytes. It is part of the cache key.
	Version() string
	// Parse reads the whole input.
	Parse(ctx context.Context, r io.Reader) (*Table, error)
}

// FormatConfig selects and configures a parser for one dataset.
type FormatConfig struct {
	Format    string
	Delimiter string
	Encoding  string
	HeaderRow int
	Sheet     string
}

// NewParser returns the adapter named by cfg.Format.
func NewParser(cfg FormatConfig) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case FormatCSV:
		delim := ';'
		if cfg.Delimiter != "" {
			r, size := utf8.DecodeRuneInString(cfg.Delimiter)
			if size != len(cfg.Delimiter) || r == utf8.RuneError {
				return nil, fmt.Errorf("csv delimiter must be a single character, got %q", cfg.Delimiter)
			}
			delim = r
		}
		if _, err := lookupEncoding(cfg.Encoding); err != nil {
			return nil, err
		}
		return &CSVParser{Delimiter: delim, HeaderRow: cfg.HeaderRow, Encoding: cfg.Encoding}, nil
	case FormatXLSX:
		return &XLSXParser{Sheet: cfg.Sheet, HeaderRow: cfg.HeaderRow}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Format)
	}
}

func errMissingHeader(headerRow, rows int) error {
	return fmt.Errorf("%w: header row %d requested but input has %d rows", ErrUnreadable, headerRow, rows)
}
