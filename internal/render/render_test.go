package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analyst-desk/analyst/internal/conversation"
)

func strPtr(s string) *string { return &s }

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		result   conversation.Result
		contains []string
		absent   []string
	}{
		{
			name:     "empty result",
			result:   conversation.Result{},
			contains: []string{EmptyResult},
		},
		{
			name:     "text only",
			result:   conversation.Result{GeneratedText: strPtr("Revenue grew.")},
			contains: []string{"## Generated text", "Revenue grew."},
			absent:   []string{"## Chart"},
		},
		{
			name:     "chart only",
			result:   conversation.Result{ChartDetails: json.RawMessage(`{"x":1}`)},
			contains: []string{"## Chart", "```json", "\"x\": 1"},
			absent:   []string{"## Generated text"},
		},
		{
			name: "text and chart",
			result: conversation.Result{
				GeneratedText: strPtr("Summary"),
				ChartDetails:  json.RawMessage(`[1,2]`),
			},
			contains: []string{"## Generated text", "Summary", "## Chart"},
		},
		{
			name:     "present but empty text",
			result:   conversation.Result{GeneratedText: strPtr("  ")},
			contains: []string{"_(empty)_"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := Markdown(tt.result)
			for _, want := range tt.contains {
				assert.Contains(t, md, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, md, unwanted)
			}
		})
	}
}

func TestChartJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"x\": 1\n}", ChartJSON(json.RawMessage(`{"x":1}`)))
	assert.Equal(t, "not json", ChartJSON(json.RawMessage(`not json`)))
}

func TestRenderer_Result(t *testing.T) {
	r, err := New(Options{Width: 60, Style: "notty"})
	require.NoError(t, err)
	assert.Equal(t, 60, r.Width())

	out := r.Result(conversation.Result{
		GeneratedText: strPtr("Quarterly **revenue** grew."),
		ChartDetails:  json.RawMessage(`{"type":"bar"}`),
	})

	assert.Contains(t, out, "revenue")
	assert.Contains(t, out, "bar")
	assert.Contains(t, out, "Chart")
}

func TestNew_DefaultWidth(t *testing.T) {
	r, err := New(Options{Style: "notty"})
	require.NoError(t, err)
	assert.Equal(t, 80, r.Width())
}
