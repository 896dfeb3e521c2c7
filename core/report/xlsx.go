package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 10
	maxColWidth = 60
)

// WriteXLSX writes the records as a single sheet workbook with a bold,
// frozen header row.
func WriteXLSX(w io.Writer, records []reconcile.OutputRecord, labels Labels) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := labels.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("xlsx sheet: %w", err)
		}
	}

	headers := labels.Headers()
	widths := make([]int, len(headers))
	write := func(row int, values []string) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
		return nil
	}

	if err := write(1, headers); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i, r := range records {
		if err := write(i+2, labels.Row(r)); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx panes: %w", err)
	}

	for i, n := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, col, col, float64(clamp(n+2, minColWidth, maxColWidth))); err != nil {
			return fmt.Errorf("xlsx column width %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
