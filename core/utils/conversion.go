package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToString converts a scanned database or spreadsheet value to its cell text.
// nil becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("02.01.2006")
	case *time.Time:
		if v == nil {
			return ""
		}
		return ToString(*v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToDecimal parses a quantity cell. Both "1234.5" and the German "1.234,5"
// notation are accepted. An empty cell yields an invalid NullDecimal.
func ToDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// NormalizeHeader folds a column header for comparison: BOM and surrounding
// whitespace removed, inner whitespace collapsed, lower case.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
