package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
)

// WriteCSV writes the records with a header row. A zero delimiter means ';'.
func WriteCSV(w io.Writer, records []reconcile.OutputRecord, labels Labels, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ';'
	}
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(labels.Headers()); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(labels.Row(r)); err != nil {
			return fmt.Errorf("csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
