package checks

import (
	"context"
	"fmt"

	"github.com/hanneshbsrt/fehlmengen/core/ocr"
)

// OCRReport describes the label recognition setup.
type OCRReport struct {
	Version string `json:"version"`
	Pattern string `json:"pattern"`
	Status  string `json:"status"` // "ok", "error"
	Error   string `json:"error,omitempty"`
}

// CheckOCR runs "tesseract --version" through the extractor.
func CheckOCR(ctx context.Context, extractor *ocr.Extractor) (*OCRReport, error) {
	if extractor == nil {
		return nil, fmt.Errorf("label recognition is not configured")
	}

	report := &OCRReport{Pattern: extractor.Pattern().String(), Status: "ok"}
	version, err := extractor.Version(ctx)
	if err != nil {
		report.Status = "error"
		report.Error = err.Error()
		return report, nil
	}
	report.Version = version
	return report, nil
}
