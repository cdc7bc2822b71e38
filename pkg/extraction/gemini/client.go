package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pdf-extractor-be/pkg/extraction"
	"pdf-extractor-be/pkg/store"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"

	// Low temperature keeps extraction output stable across runs.
	defaultTemperature = 0.2
)

// Client calls the Gemini generateContent API with the PDF attached as
// inline data. One request per extraction; no provider-side state.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	HTTP    *http.Client
}

var _ extraction.Extractor = &Client{}

// NewClient creates a Gemini extraction client. The timeout bounds the
// whole call; hitting it surfaces as a transient failure.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Model:   defaultModel,
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	Contents         []*geminiContent        `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// --- Interface implementation ---

func (c *Client) Extract(ctx context.Context, document *store.UploadedDocument, promptText string, options ...extraction.Option) (string, error) {
	opts := extraction.Options{
		Temperature: defaultTemperature,
		Model:       c.Model,
	}
	for _, opt := range options {
		opt(&opts)
	}

	payload := geminiRequest{
		Contents: []*geminiContent{
			{
				Role: "user",
				Parts: []*geminiPart{
					{
						InlineData: &geminiInlineData{
							MimeType: document.MimeType,
							Data:     base64.StdEncoding.EncodeToString(document.Data),
						},
					},
					{Text: promptText},
				},
			},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature: opts.Temperature,
		},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", extraction.NewMalformedError(fmt.Sprintf("marshal request: %v", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, opts.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", extraction.NewTransientError("build request", err)
	}

	req.Header.Set("x-goog-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		// Timeouts, DNS failures, connection resets all land here.
		return "", extraction.NewTransientError("provider unreachable", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", extraction.NewTransientError("read response body", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", errorForStatus(res.StatusCode, resBody)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", extraction.NewMalformedError(fmt.Sprintf("undecodable response body: %v", err))
	}

	text, err := extractText(&geminiRes)
	if err != nil {
		return "", err
	}
	return text, nil
}

func errorForStatus(status int, body []byte) error {
	msg := fmt.Sprintf("status %d, body %s", status, string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return extraction.NewAuthError(msg)
	case status == http.StatusTooManyRequests:
		return extraction.NewQuotaError(msg)
	case status >= 500:
		return extraction.NewTransientError(msg, nil)
	default:
		return extraction.NewMalformedError(msg)
	}
}

// extractText pulls the first candidate's text and rejects empty or
// non-text payloads rather than passing them through.
func extractText(res *geminiResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", extraction.NewMalformedError("response has no candidates")
	}

	var text strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", extraction.NewMalformedError("response candidate has no text content")
	}
	return text.String(), nil
}
