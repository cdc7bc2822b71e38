package prompt

import (
	"strings"
	"testing"

	"pdf-extractor-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainsGoalVerbatim(t *testing.T) {
	tests := []struct {
		name string
		goal string
	}{
		{name: "simple goal", goal: "Extract invoice fields"},
		{name: "multiline goal", goal: "Find all financial figures\nand summarize them"},
		{name: "goal with special characters", goal: `Summarize the "Q3" section & totals > 100`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewIntentBuilder(store.Intent{Goal: tt.goal, Style: store.StyleBullet}).Build()
			require.NoError(t, err)
			assert.NotEmpty(t, out)
			assert.Contains(t, out, strings.TrimSpace(tt.goal))
		})
	}
}

func TestBuildEmptyGoalFails(t *testing.T) {
	for _, goal := range []string{"", "   ", "\n\t"} {
		_, err := NewIntentBuilder(store.Intent{Goal: goal, Style: store.StyleBullet}).Build()
		assert.ErrorIs(t, err, ErrEmptyGoal)
	}
}

func TestBuildContainsEveryEntity(t *testing.T) {
	intent := store.Intent{
		Goal:     "Extract invoice fields",
		Entities: []string{"Invoice Number", "Total Amount", "Due Date", "Invoice Number"},
		Style:    store.StyleTable,
	}

	out, err := NewIntentBuilder(intent).Build()
	require.NoError(t, err)

	for _, entity := range intent.Entities {
		assert.Contains(t, out, entity)
	}
}

func TestBuildOmitsEntitySectionWhenEmpty(t *testing.T) {
	out, err := NewIntentBuilder(store.Intent{Goal: "Summarize", Style: store.StyleParagraph}).Build()
	require.NoError(t, err)
	assert.NotContains(t, out, "<entities>")
}

func TestBuildStyleDirectives(t *testing.T) {
	tests := []struct {
		style store.Style
		want  string
	}{
		{store.StyleBullet, "bullet list"},
		{store.StyleNumbered, "numbered list"},
		{store.StyleTable, "Markdown table"},
		{store.StyleParagraph, "paragraph summary"},
		{store.StyleJSON, "single well-formed JSON object"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			out, err := NewIntentBuilder(store.Intent{Goal: "Summarize", Style: tt.style}).Build()
			require.NoError(t, err)
			assert.Contains(t, out, string(tt.style))
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestBuildIncludesNotesVerbatim(t *testing.T) {
	notes := "Convert all currencies to USD, include page references"
	out, err := NewIntentBuilder(store.Intent{Goal: "Summarize", Style: store.StyleBullet, Notes: notes}).Build()
	require.NoError(t, err)
	assert.Contains(t, out, notes)

	// No notes section when notes are empty
	out, err = NewIntentBuilder(store.Intent{Goal: "Summarize", Style: store.StyleBullet}).Build()
	require.NoError(t, err)
	assert.NotContains(t, out, "<additional_instructions>")
}

func TestBuildIsDeterministic(t *testing.T) {
	intent := store.Intent{
		Goal:     "Extract invoice fields",
		Entities: []string{"Invoice Number", "Total Amount"},
		Style:    store.StyleTable,
		Notes:    "Include page references",
	}

	first, err := NewIntentBuilder(intent).Build()
	require.NoError(t, err)
	second, err := NewIntentBuilder(intent).Build()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildSectionOrder(t *testing.T) {
	intent := store.Intent{
		Goal:     "Extract invoice fields",
		Entities: []string{"Invoice Number"},
		Style:    store.StyleTable,
		Notes:    "Include page references",
	}

	out, err := NewIntentBuilder(intent).Build()
	require.NoError(t, err)

	goalIdx := strings.Index(out, "<goal>")
	entitiesIdx := strings.Index(out, "<entities>")
	styleIdx := strings.Index(out, "<output_style>")
	notesIdx := strings.Index(out, "<additional_instructions>")

	require.True(t, goalIdx >= 0 && entitiesIdx >= 0 && styleIdx >= 0 && notesIdx >= 0)
	assert.Less(t, goalIdx, entitiesIdx)
	assert.Less(t, entitiesIdx, styleIdx)
	assert.Less(t, styleIdx, notesIdx)
}
