package store

import "time"

// Style governs the shape of the extracted output.
type Style string

const (
	StyleBullet    Style = "bullet"
	StyleNumbered  Style = "numbered"
	StyleTable     Style = "table"
	StyleParagraph Style = "paragraph"
	StyleJSON      Style = "json"
)

// ValidStyle reports whether s is one of the five supported styles.
func ValidStyle(s Style) bool {
	switch s {
	case StyleBullet, StyleNumbered, StyleTable, StyleParagraph, StyleJSON:
		return true
	}
	return false
}

// Intent is the user's structured description of what to extract and how
// to format it. Entities keep insertion order; duplicates are allowed.
type Intent struct {
	Goal     string   `json:"goal"`
	Entities []string `json:"entities"`
	Style    Style    `json:"style"`
	Notes    string   `json:"notes"`
}

// UploadedDocument holds the raw PDF for the lifetime of its session.
// A re-upload replaces it wholesale.
type UploadedDocument struct {
	Data     []byte `json:"-"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
}

// ExtractionResult is immutable once produced; the next successful call
// supersedes it, it is never mutated in place.
type ExtractionResult struct {
	Content     string    `json:"content"`
	Style       Style     `json:"style"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Session is the active per-user state kept in memory between requests.
type Session struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	Intent   Intent            `json:"intent"`
	Document *UploadedDocument `json:"document,omitempty"`
	Result   *ExtractionResult `json:"result,omitempty"`

	// Message of the last failure, shown inline by the UI. Cleared on the
	// next edit or successful submission.
	LastError string `json:"last_error,omitempty"`
}

const (
	StatusIdle       = "IDLE"
	StatusValidating = "VALIDATING"
	StatusSubmitting = "SUBMITTING"
	StatusSucceeded  = "SUCCEEDED"
	StatusFailed     = "FAILED"
)
