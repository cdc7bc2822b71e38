package extraction

import (
	"context"

	"pdf-extractor-be/pkg/store"
)

// Option allows optional per-call parameters like Temperature or Model.
type Option func(*Options)

type Options struct {
	Temperature float64
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Extractor defines the contract for any document extraction backend.
// Each call is independent and stateless from the provider's perspective:
// no streaming, no chunking, no multi-turn state.
type Extractor interface {
	// Extract sends the document and the assembled prompt to the provider
	// in a single synchronous request and returns the extracted text.
	Extract(ctx context.Context, document *store.UploadedDocument, promptText string, options ...Option) (string, error)
}
