package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVParser reads delimited text exports.
type CSVParser struct {
	// Delimiter separates fields. The ERP exports use ';'.
	Delimiter rune
	// HeaderRow is the 0-based index of the header line; lines above it are
	// skipped. Blank lines are not counted.
	HeaderRow int
	// Encoding is a WHATWG encoding label such as "utf-8" or "windows-1252".
	// A byte order mark in the input takes precedence.
	Encoding string
}

func (p *CSVParser) Name() string { return FormatCSV }

func (p *CSVParser) Version() string {
	return fmt.Sprintf("1;%q;%d;%s", p.Delimiter, p.HeaderRow, strings.ToLower(p.Encoding))
}

// Parse decodes the input to UTF-8 and reads all records.
func (p *CSVParser) Parse(ctx context.Context, r io.Reader) (*Table, error) {
	enc, err := lookupEncoding(p.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))
	cr.Comma = p.Delimiter
	if cr.Comma == 0 {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var raw [][]string
	for {
		if len(raw)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", ErrUnreadable, err)
		}
		raw = append(raw, rec)
	}

	return newTable(raw, p.HeaderRow)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", ErrUnsupportedFormat, name)
	}
	return enc, nil
}
