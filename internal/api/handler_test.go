package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaviva/fatura-extractor/internal/extractor"
	"github.com/contaviva/fatura-extractor/internal/statement"
)

func setupTestApp() *fiber.App {
	logger := log.New(io.Discard)
	app := fiber.New()
	NewHandler(statement.New(logger), logger).Register(app)
	return app
}

func uploadRequest(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestExtractRequiresFile(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/extract", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExtractRejectsNonPDF(t *testing.T) {
	app := setupTestApp()

	body, contentType := uploadRequest(t, "statement.png", "image/png", []byte("not a pdf"))
	req := httptest.NewRequest("POST", "/api/extract", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result ExtractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not a PDF")
	// transactions must be [] in JSON, never null
	assert.NotNil(t, result.Transactions)
}

func TestExtractRejectsCorruptPDF(t *testing.T) {
	app := setupTestApp()

	body, contentType := uploadRequest(t, "statement.pdf", extractor.MIMEPDF, []byte("garbage bytes"))
	req := httptest.NewRequest("POST", "/api/extract", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var result ExtractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result.Error, "corrupted or password-protected")
}

func TestPeriodRejectsEmptyFile(t *testing.T) {
	app := setupTestApp()

	body, contentType := uploadRequest(t, "statement.pdf", extractor.MIMEPDF, nil)
	req := httptest.NewRequest("POST", "/api/period", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result PeriodResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "empty")
}
