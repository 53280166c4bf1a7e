// Package render turns a conversation.Result into terminal text. Generated
// text is treated as markdown; chart details are opaque and shown as
// indented JSON.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/analyst-desk/analyst/internal/conversation"
)

// EmptyResult is shown when the last reply carried neither text nor chart.
const EmptyResult = "_The last reply had no generated text or chart._"

// Options configures a Renderer.
type Options struct {
	// Width is the word-wrap column.
	Width int
	// Style is a glamour style name ("dark", "light", "notty", ...).
	// Empty picks one from the terminal, or "notty" when NO_COLOR is set.
	Style string
}

// Renderer renders results with a fixed wrap width.
type Renderer struct {
	md    *glamour.TermRenderer
	width int
}

// New creates a renderer.
func New(opts Options) (*Renderer, error) {
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	rendererOpts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch {
	case opts.Style != "":
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	case os.Getenv("NO_COLOR") != "":
		rendererOpts = append(rendererOpts, glamour.WithStylePath("notty"))
	default:
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	}

	md, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Renderer{md: md, width: width}, nil
}

// Width returns the wrap column.
func (r *Renderer) Width() int {
	return r.width
}

// Result renders res. Rendering failures fall back to the raw markdown.
func (r *Renderer) Result(res conversation.Result) string {
	return r.Markdown(Markdown(res))
}

// Markdown renders arbitrary markdown with a plain-text fallback.
func (r *Renderer) Markdown(md string) string {
	out, err := r.md.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Markdown builds the markdown document for res.
func Markdown(res conversation.Result) string {
	if res.Empty() {
		return EmptyResult
	}

	var b strings.Builder

	if res.GeneratedText != nil {
		b.WriteString("## Generated text\n\n")
		if strings.TrimSpace(*res.GeneratedText) == "" {
			b.WriteString("_(empty)_\n")
		} else {
			b.WriteString(*res.GeneratedText)
			b.WriteString("\n")
		}
	}

	if res.ChartDetails != nil {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("## Chart\n\n```json\n")
		b.WriteString(ChartJSON(res.ChartDetails))
		b.WriteString("\n```\n")
	}

	return b.String()
}

// ChartJSON pretty-prints chart details. Bytes that are not valid JSON are
// returned unchanged.
func ChartJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
