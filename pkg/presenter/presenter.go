package presenter

import (
	"encoding/json"
	"fmt"

	"pdf-extractor-be/pkg/store"
)

// View is a render-ready representation of an extraction result. Format
// tells the UI how to display Content ("markdown", "json" or "table").
type View struct {
	Format      string `json:"format"`
	Content     string `json:"content"`
	GeneratedAt string `json:"generated_at"`
}

// Downloadable packages a result as a file attachment.
type Downloadable struct {
	Filename string
	Bytes    []byte
	MimeType string
}

// Render produces a view matching the result's style. It presents whatever
// it is given as-is and has no error states of its own.
func Render(result *store.ExtractionResult) *View {
	view := &View{
		Format:      "markdown",
		Content:     result.Content,
		GeneratedAt: result.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	switch result.Style {
	case store.StyleJSON:
		view.Format = "json"
		// Pretty-print when the payload actually parses; otherwise show
		// the raw text untouched.
		var parsed any
		if err := json.Unmarshal([]byte(result.Content), &parsed); err == nil {
			if pretty, err := json.MarshalIndent(parsed, "", "  "); err == nil {
				view.Content = string(pretty)
			}
		}
	case store.StyleTable:
		view.Format = "table"
	}

	return view
}

// ToDownloadable packages the result content as a Markdown file named
// after the moment it was generated.
func ToDownloadable(result *store.ExtractionResult) *Downloadable {
	return &Downloadable{
		Filename: fmt.Sprintf("extracted_%s.md", result.GeneratedAt.UTC().Format("20060102_150405")),
		Bytes:    []byte(result.Content),
		MimeType: "text/markdown",
	}
}
