package integrity

import (
	"github.com/hanneshbsrt/fehlmengen/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
	group.Get("/ocr", h.HandleOCRCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the report bucket, the orders table and the OCR binary.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if r, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["storage"] = r
	}

	if r, err := h.service.CheckDatabase(); err != nil {
		report["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["database"] = r
	}

	if r, err := h.service.CheckOCR(ctx); err != nil {
		report["ocr"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["ocr"] = r
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the report bucket.
// @Summary Check Storage
// @Description Checks that the report bucket exists and counts published reports. Optionally creates the bucket.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists {
		l.Warn("Report bucket missing", zap.String("bucket", report.Bucket))

		if fix {
			l.Info("Attempting to create report bucket")
			if err := h.service.FixStorage(c.Context()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create bucket",
					"details": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"bucket": report.Bucket,
			})
		}
	}

	return c.JSON(report)
}

// HandleDatabaseCheck checks the orders table schema.
// @Summary Check Orders Table
// @Description Checks that the configured ERP orders table has a column for every required field.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.DatabaseReport "Database Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting orders table check")

	report, err := h.service.CheckDatabase()
	if err != nil {
		l.Error("Orders table check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleOCRCheck checks the tesseract installation.
// @Summary Check OCR
// @Description Runs tesseract --version.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.OCRReport "OCR Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/ocr [get]
func (h *Handler) HandleOCRCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckOCR(c.Context())
	if err != nil {
		l.Error("OCR check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
