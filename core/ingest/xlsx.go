package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads one worksheet of an Excel workbook.
type XLSXParser struct {
	// Sheet names the worksheet. Empty selects the first sheet.
	Sheet string
	// HeaderRow is the 0-based index of the header row.
	HeaderRow int
}

func (p *XLSXParser) Name() string { return FormatXLSX }

func (p *XLSXParser) Version() string {
	return fmt.Sprintf("1;%s;%d", p.Sheet, p.HeaderRow)
}

// Parse reads raw cell values, so dates arrive as Excel serial numbers and are
// converted by the decoders.
func (p *XLSXParser) Parse(ctx context.Context, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: xlsx: workbook has no sheets", ErrUnreadable)
		}
		sheet = sheets[0]
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx sheet %q: %v", ErrUnreadable, sheet, err)
	}

	return newTable(raw, p.HeaderRow)
}
