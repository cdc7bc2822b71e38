package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type IntentDTO struct {
	Goal     string   `json:"goal"`
	Entities []string `json:"entities"`
	Style    string   `json:"style"`
	Notes    string   `json:"notes"`
}

type DocumentInfoDTO struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mime_type"`
	SizeBytes int    `json:"size_bytes"`
}

type ResultMetaDTO struct {
	Style       string    `json:"style"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SessionSnapshotResponse is the full form state the UI re-renders from.
type SessionSnapshotResponse struct {
	Id        uuid.UUID        `json:"id"`
	Status    string           `json:"status"`
	Intent    IntentDTO        `json:"intent"`
	Document  *DocumentInfoDTO `json:"document,omitempty"`
	Result    *ResultMetaDTO   `json:"result,omitempty"`
	LastError string           `json:"last_error,omitempty"`
}
