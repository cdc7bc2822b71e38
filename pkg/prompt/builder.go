package prompt

import (
	"errors"
	"fmt"
	"strings"

	"pdf-extractor-be/pkg/store"
)

// ErrEmptyGoal is returned when the intent has no stated goal. Submission
// must not reach the provider in that case.
var ErrEmptyGoal = errors.New("intent goal must not be empty")

// styleDirectives describe, in one line each, the expected shape of the
// answer for every supported output style.
var styleDirectives = map[store.Style]string{
	store.StyleBullet:    "Present the answer as a bullet list, one finding per bullet.",
	store.StyleNumbered:  "Present the answer as a numbered list in a meaningful order.",
	store.StyleTable:     "Present the answer as a Markdown table with a header row.",
	store.StyleParagraph: "Present the answer as a concise paragraph summary in plain prose.",
	store.StyleJSON:      "Respond with a single well-formed JSON object and nothing else.",
}

// IntentBuilder assembles the extraction prompt sent alongside the PDF.
type IntentBuilder struct {
	intent store.Intent
}

// NewIntentBuilder creates a prompt builder for the given intent.
func NewIntentBuilder(intent store.Intent) *IntentBuilder {
	return &IntentBuilder{intent: intent}
}

// Build produces the full prompt text. Deterministic and side-effect free:
// the same intent always yields the same prompt. Section order is fixed so
// the model cannot conflate user data with instructions.
func (b *IntentBuilder) Build() (string, error) {
	if strings.TrimSpace(b.intent.Goal) == "" {
		return "", ErrEmptyGoal
	}

	var prompt strings.Builder

	b.writeTask(&prompt)
	b.writeGoal(&prompt)
	b.writeEntities(&prompt)
	b.writeStyle(&prompt)
	b.writeNotes(&prompt)
	b.writeGuidelines(&prompt)

	return prompt.String(), nil
}

func (b *IntentBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a professional document analyst. The user uploaded a PDF and wants specific information extracted from it.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *IntentBuilder) writeGoal(prompt *strings.Builder) {
	prompt.WriteString("<goal>\n")
	prompt.WriteString(strings.TrimSpace(b.intent.Goal))
	prompt.WriteString("\n</goal>\n\n")
}

func (b *IntentBuilder) writeEntities(prompt *strings.Builder) {
	if len(b.intent.Entities) == 0 {
		return
	}

	prompt.WriteString("<entities>\n")
	prompt.WriteString("Extract exactly the following entities or fields:\n")
	for _, entity := range b.intent.Entities {
		prompt.WriteString("- ")
		prompt.WriteString(entity)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</entities>\n\n")
}

func (b *IntentBuilder) writeStyle(prompt *strings.Builder) {
	directive, ok := styleDirectives[b.intent.Style]
	if !ok {
		directive = styleDirectives[store.StyleBullet]
	}
	prompt.WriteString("<output_style>\n")
	fmt.Fprintf(prompt, "Requested output style: %s. %s\n", b.styleOrDefault(), directive)
	prompt.WriteString("</output_style>\n\n")
}

func (b *IntentBuilder) styleOrDefault() store.Style {
	if store.ValidStyle(b.intent.Style) {
		return b.intent.Style
	}
	return store.StyleBullet
}

func (b *IntentBuilder) writeNotes(prompt *strings.Builder) {
	if strings.TrimSpace(b.intent.Notes) == "" {
		return
	}

	prompt.WriteString("<additional_instructions>\n")
	prompt.WriteString(b.intent.Notes)
	prompt.WriteString("\n</additional_instructions>\n\n")
}

func (b *IntentBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Read the PDF carefully.\n")
	prompt.WriteString("2. Extract only relevant information that satisfies the user's goal.\n")
	prompt.WriteString("3. Use clear headings, bullet points, tables, or numbered lists where appropriate.\n")
	prompt.WriteString("4. If the requested information is not present in the document, say so explicitly.\n")
	prompt.WriteString("5. Do not add external knowledge beyond what the PDF contains.\n")
	prompt.WriteString("</guidelines>\n\n")
	prompt.WriteString("Begin your response with a short one-sentence summary, then proceed with the detailed answer.")
}
