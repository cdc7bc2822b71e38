package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pdf-extractor-be/internal/pkg/serverutils"
	"pdf-extractor-be/internal/repository/memory"
	"pdf-extractor-be/internal/service"
	"pdf-extractor-be/pkg/extraction"
	"pdf-extractor-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{}) {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

type fakeExtractor struct {
	content string
	err     error
}

func (f *fakeExtractor) Extract(ctx context.Context, document *store.UploadedDocument, promptText string, options ...extraction.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func newTestApp(extractor extraction.Extractor) *fiber.App {
	repo := memory.NewSessionRepository(time.Hour)
	sessionService := service.NewSessionService(repo, nopLogger{})
	extractionService := service.NewExtractionService(repo, extractor, nopLogger{}, 0)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewSessionController(sessionService).RegisterRoutes(api)
	NewExtractionController(sessionService, extractionService).RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &envelope))
	}
	return resp, envelope
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/session/v1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]any)
	return data["id"].(string)
}

func uploadPDF(t *testing.T, app *fiber.App, sessionID, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("document", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/extract/v1/%s/document", sessionID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestFullExtractionFlow(t *testing.T) {
	content := "| Invoice Number | Total Amount |\n|---|---|\n|INV-1|$100|"
	app := newTestApp(&fakeExtractor{content: content})

	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/extract/v1/"+sessionID+"/intent", map[string]any{
		"goal":     "Extract invoice fields",
		"entities": []string{"Invoice Number", "Total Amount"},
		"style":    "table",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = uploadPDF(t, app, sessionID, "invoice.pdf", []byte("%PDF-1.4 fake"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/extract/v1/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, store.StatusSucceeded, data["status"])
	result := data["result"].(map[string]any)
	assert.Equal(t, content, result["content"])
	assert.Equal(t, "table", result["format"])

	// Download the markdown artifact
	req := httptest.NewRequest(http.MethodGet, "/api/extract/v1/"+sessionID+"/download", nil)
	dlResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, dlResp.StatusCode)
	assert.Equal(t, "text/markdown", dlResp.Header.Get("Content-Type"))
	assert.Contains(t, dlResp.Header.Get("Content-Disposition"), "attachment; filename=\"extracted_")

	raw, err := io.ReadAll(dlResp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
}

func TestUpdateIntentRejectsUnknownStyle(t *testing.T) {
	app := newTestApp(&fakeExtractor{content: "x"})
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/extract/v1/"+sessionID+"/intent", map[string]any{
		"goal":  "Summarize",
		"style": "haiku",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := newTestApp(&fakeExtractor{content: "x"})
	sessionID := createSession(t, app)

	resp := uploadPDF(t, app, sessionID, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitWithoutDocumentFails(t *testing.T) {
	app := newTestApp(&fakeExtractor{content: "x"})
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/extract/v1/"+sessionID+"/intent", map[string]any{
		"goal": "Summarize",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/extract/v1/"+sessionID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope["message"], "document")
}

func TestSubmitQuotaErrorMapsTo429(t *testing.T) {
	app := newTestApp(&fakeExtractor{err: extraction.NewQuotaError("quota exhausted")})
	sessionID := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/extract/v1/"+sessionID+"/intent", map[string]any{
		"goal": "Summarize",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = uploadPDF(t, app, sessionID, "doc.pdf", []byte("%PDF"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/extract/v1/"+sessionID, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestSessionEndpoints(t *testing.T) {
	app := newTestApp(&fakeExtractor{content: "x"})
	sessionID := createSession(t, app)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/session/v1/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, store.StatusIdle, data["status"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/session/v1/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/session/v1/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
