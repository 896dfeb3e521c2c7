package shortage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hanneshbsrt/fehlmengen/core/ingest"
	"github.com/hanneshbsrt/fehlmengen/core/logger"
	"github.com/hanneshbsrt/fehlmengen/core/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for shortage reconciliation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the shortage routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/shortages")
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/labels", h.HandleLabels)
	group.Delete("/cache", h.HandlePurgeCache)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:name", h.HandleGetReport)
	group.Delete("/reports/:name", h.HandleDeleteReport)
}

// HandleReconcile reconciles uploaded datasets and returns the report.
// @Summary Reconcile shortages
// @Description Joins the requested identifiers with stock, overrides and open purchase orders.
// @Tags shortages
// @Accept multipart/form-data
// @Produce json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param stock formData file true "Stock export"
// @Param orders formData file false "Open purchase orders (optional when a database table is configured)"
// @Param overrides formData file false "Quantity overrides"
// @Param identifiers_file formData file false "Identifier list"
// @Param identifiers formData string false "Identifiers separated by comma, semicolon or whitespace"
// @Param format query string false "Report format (xlsx, csv, json)"
// @Success 200 {object} reconcile.Result "Reconciliation result (json format)"
// @Failure 400 {object} map[string]string "Missing input or unsupported format"
// @Failure 409 {object} map[string]string "Duplicate identifier in strict mode"
// @Failure 422 {object} map[string]string "Malformed dataset"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /shortages/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	format := strings.ToLower(c.Query("format", h.service.ReportConfig().Format))
	if !report.IsValidFormat(format) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported report format %q", format),
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "expected multipart form data",
		})
	}

	var in Input
	for field, dst := range map[string]*[]byte{
		"stock":            &in.Stock,
		"orders":           &in.Orders,
		"overrides":        &in.Overrides,
		"identifiers_file": &in.IdentifierFile,
	} {
		if *dst, err = readFormFile(form, field); err != nil {
			l.Error("Failed to read upload", zap.String("field", field), zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read %s: %v", field, err),
			})
		}
	}
	in.Identifiers = ingest.ParseIdentifierList(strings.Join(form.Value["identifiers"], "\n"))

	result, err := h.service.Reconcile(c.Context(), in)
	if err != nil {
		return h.fail(c, l, "Reconciliation failed", err)
	}

	out, err := h.service.Render(c.Context(), result, format)
	if err != nil {
		return h.fail(c, l, "Report rendering failed", err)
	}
	if out.Published != "" {
		c.Set("X-Report-Name", out.Published)
	}

	if format == report.FormatJSON {
		return c.JSON(result)
	}
	c.Attachment(out.FileName)
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Data)
}

// HandleLabels recognises identifiers on uploaded label photos.
// @Summary Recognise label identifiers
// @Description Runs OCR on the images and returns candidates split into accepted and to-review.
// @Tags shortages
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Label photos"
// @Success 200 {object} LabelResult "Recognised identifiers"
// @Failure 400 {object} map[string]string "No images"
// @Failure 502 {object} map[string]string "OCR failed"
// @Failure 503 {object} map[string]string "OCR not configured"
// @Router /shortages/labels [post]
func (h *Handler) HandleLabels(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no images uploaded",
		})
	}

	dir, err := os.MkdirTemp("", "labels-*")
	if err != nil {
		return h.fail(c, l, "Failed to create temp dir", err)
	}
	defer os.RemoveAll(dir)

	var paths []string
	for i, fh := range form.File["images"] {
		sub := filepath.Join(dir, strconv.Itoa(i))
		if err := os.Mkdir(sub, 0o700); err != nil {
			return h.fail(c, l, "Failed to store image", err)
		}
		p := filepath.Join(sub, filepath.Base(fh.Filename))
		if err := c.SaveFile(fh, p); err != nil {
			return h.fail(c, l, "Failed to store image", err)
		}
		paths = append(paths, p)
	}

	res, err := h.service.ExtractLabels(c.Context(), paths)
	if err != nil {
		return h.fail(c, l, "Label recognition failed", err)
	}
	return c.JSON(res)
}

// HandlePurgeCache drops all cached dataset parses.
// @Summary Purge parse cache
// @Tags shortages
// @Produce json
// @Success 200 {object} map[string]int "Number of purged entries"
// @Router /shortages/cache [delete]
func (h *Handler) HandlePurgeCache(c *fiber.Ctx) error {
	n := h.service.PurgeCache()
	logger.WithRayID(h.logger, c).Info("Parse cache purged", zap.Int("entries", n))
	return c.JSON(fiber.Map{"purged": n})
}

// HandleListReports lists published reports.
// @Summary List reports
// @Tags shortages
// @Produce json
// @Success 200 {array} string "Report names, newest first"
// @Failure 503 {object} map[string]string "Publishing not configured"
// @Router /shortages/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	names, err := h.service.ListReports(c.Context())
	if err != nil {
		return h.fail(c, logger.WithRayID(h.logger, c), "Listing reports failed", err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

// HandleGetReport downloads a published report.
// @Summary Get report
// @Tags shortages
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv,json
// @Param name path string true "Report name (e.g. 'ergebnis_20300101_120000_000_1a2b3c4d.xlsx')"
// @Success 200 {file} file "Report"
// @Failure 404 {object} map[string]string "Not found"
// @Router /shortages/reports/{name} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	name := c.Params("name")
	data, err := h.service.FetchReport(c.Context(), name)
	if err != nil {
		return h.fail(c, logger.WithRayID(h.logger, c), "Fetching report failed", err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, report.ContentType(strings.TrimPrefix(filepath.Ext(name), ".")))
	return c.Send(data)
}

// HandleDeleteReport removes a published report.
// @Summary Delete report
// @Tags shortages
// @Produce json
// @Param name path string true "Report name"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid name"
// @Failure 503 {object} map[string]string "Publishing not configured"
// @Router /shortages/reports/{name} [delete]
func (h *Handler) HandleDeleteReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	name := c.Params("name")
	if err := h.service.RemoveReport(c.Context(), name); err != nil {
		return h.fail(c, l, "Deleting report failed", err)
	}
	l.Info("Report deleted", zap.String("name", name))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func readFormFile(form *multipart.Form, field string) ([]byte, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
