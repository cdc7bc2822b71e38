package dto

import "time"

// UpdateIntentRequest merges field-level changes into the stored intent.
// Nil fields leave the current value untouched.
type UpdateIntentRequest struct {
	Goal     *string   `json:"goal,omitempty"`
	Entities *[]string `json:"entities,omitempty" validate:"omitempty,max=50"`
	Style    *string   `json:"style,omitempty" validate:"omitempty,oneof=bullet numbered table paragraph json"`
	Notes    *string   `json:"notes,omitempty"`
}

type UploadDocumentResponse struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mime_type"`
	SizeBytes int    `json:"size_bytes"`
}

type ResultViewDTO struct {
	Format      string    `json:"format"`
	Content     string    `json:"content"`
	Style       string    `json:"style"`
	GeneratedAt time.Time `json:"generated_at"`
}

type SubmitExtractionResponse struct {
	Status string         `json:"status"`
	Result *ResultViewDTO `json:"result,omitempty"`
}
