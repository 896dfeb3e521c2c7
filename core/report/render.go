package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for report formats other than xlsx, csv and json.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// IsValidFormat reports whether format can be rendered.
func IsValidFormat(format string) bool {
	switch normalize(format) {
	case FormatXLSX, FormatCSV, FormatJSON:
		return true
	default:
		return false
	}
}

// Render writes the result in the given format. json renders the whole
// result including warnings and summary.
func Render(w io.Writer, format string, result *reconcile.Result, cfg Config) error {
	if result == nil {
		result = &reconcile.Result{}
	}
	switch normalize(format) {
	case FormatXLSX:
		return WriteXLSX(w, result.Records, cfg.Labels())
	case FormatCSV:
		return WriteCSV(w, result.Records, cfg.Labels(), cfg.Comma())
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type of a report format.
func ContentType(format string) string {
	switch normalize(format) {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// FileName returns the download name of a report.
func FileName(format string) string {
	return "ergebnis." + normalize(format)
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
