package api

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/contaviva/fatura-extractor/internal/extractor"
	"github.com/contaviva/fatura-extractor/internal/models"
	"github.com/contaviva/fatura-extractor/internal/statement"
)

// ExtractResponse is the JSON body of POST /api/extract.
type ExtractResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Template     string               `json:"template,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

// PeriodResponse is the JSON body of POST /api/period.
type PeriodResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Month   int    `json:"month,omitempty"`
	Year    int    `json:"year,omitempty"`
}

// Handler holds the HTTP surface over the two extraction operations.
type Handler struct {
	extractor *statement.Extractor
	logger    *log.Logger
}

func NewHandler(ext *statement.Extractor, logger *log.Logger) *Handler {
	return &Handler{extractor: ext, logger: logger}
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/extract", h.HandleExtract)
	app.Post("/api/period", h.HandlePeriod)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "engine": "fiber"})
}

// HandleExtract accepts a multipart upload (field "file") and returns the
// extracted transaction list.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	data, mimeType, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{
			Error: "no file uploaded; use form field 'file'", Transactions: []models.Transaction{},
		})
	}

	transactions, err := h.extractor.Transactions(data, mimeType)
	if err != nil {
		h.logger.Warn("extraction failed", "error", err)
		return c.Status(statusFor(err)).JSON(ExtractResponse{
			Error: userMessage(err), Transactions: []models.Transaction{},
		})
	}

	return c.JSON(ExtractResponse{
		Success:      true,
		Transactions: transactions,
		Count:        len(transactions),
	})
}

// HandlePeriod accepts the same upload and returns the inferred billing period.
func (h *Handler) HandlePeriod(c *fiber.Ctx) error {
	data, mimeType, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(PeriodResponse{
			Error: "no file uploaded; use form field 'file'",
		})
	}

	period, err := h.extractor.Period(data, mimeType)
	if err != nil {
		h.logger.Warn("period inference failed", "error", err)
		return c.Status(statusFor(err)).JSON(PeriodResponse{Error: userMessage(err)})
	}

	return c.JSON(PeriodResponse{
		Success: true,
		Month:   int(period.Month),
		Year:    period.Year,
	})
}

func readUpload(c *fiber.Ctx) ([]byte, string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	data, err := readAll(header)
	if err != nil {
		return nil, "", err
	}

	// Browsers send the real MIME type; fall back to the extension when the
	// client sent nothing useful.
	mimeType := header.Header.Get("Content-Type")
	if (mimeType == "" || mimeType == "application/octet-stream") &&
		strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		mimeType = extractor.MIMEPDF
	}
	return data, mimeType, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// statusFor maps loader failures to HTTP statuses: bad inputs are 400,
// undecodable-but-plausible documents are 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, extractor.ErrNotPDF), errors.Is(err, extractor.ErrEmptyFile):
		return fiber.StatusBadRequest
	case errors.Is(err, extractor.ErrUnreadableDocument), errors.Is(err, extractor.ErrNoTextContent):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// userMessage turns each classified failure into actionable guidance.
func userMessage(err error) string {
	switch {
	case errors.Is(err, extractor.ErrNotPDF):
		return "The uploaded file is not a PDF. Please select your statement's PDF file."
	case errors.Is(err, extractor.ErrEmptyFile):
		return "The uploaded file is empty. Please re-select the file and try again."
	case errors.Is(err, extractor.ErrUnreadableDocument):
		return "The PDF could not be read. It may be corrupted or password-protected; try re-downloading the statement from your bank."
	case errors.Is(err, extractor.ErrNoTextContent):
		return "No text could be found in this PDF. It appears to be a scanned/image-based statement, which is not supported."
	default:
		return err.Error()
	}
}
