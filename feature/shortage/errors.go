package shortage

import (
	"errors"

	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/ocr"
	"github.com/hanneshbsrt/fehlmengen/core/reconcile"
	"github.com/hanneshbsrt/fehlmengen/core/report"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrMalformedDataset), errors.Is(err, ingest.ErrUnreadable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrDuplicateIdentifier):
		return fiber.StatusConflict
	case errors.Is(err, ErrMissingInput),
		errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.Is(err, report.ErrUnsupportedFormat),
		errors.Is(err, report.ErrInvalidName):
		return fiber.StatusBadRequest
	case errors.Is(err, report.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrLabelsDisabled), errors.Is(err, ErrPublishingDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ocr.ErrTesseract):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
