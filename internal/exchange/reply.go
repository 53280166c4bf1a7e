package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/analyst-desk/analyst/internal/conversation"
)

// Request is the JSON body of POST /analyst_chat.
type Request struct {
	Message string `json:"message"`
}

// Reply is a decoded successful response. Absent optional fields stay nil.
type Reply struct {
	Answer        string          `json:"answer"`
	GeneratedText *string         `json:"generated_text"`
	ChartDetails  json.RawMessage `json:"chart_details"`

	Status   int           `json:"-"`
	Duration time.Duration `json:"-"`
}

// Result converts the reply into the payload shown by the result panel.
func (r *Reply) Result() conversation.Result {
	return conversation.Result{
		GeneratedText: r.GeneratedText,
		ChartDetails:  r.ChartDetails,
	}.Clone()
}

// wireReply keeps every field raw so that unexpected JSON types degrade to
// their literal text instead of failing the exchange.
type wireReply struct {
	Answer        json.RawMessage `json:"answer"`
	GeneratedText json.RawMessage `json:"generated_text"`
	ChartDetails  json.RawMessage `json:"chart_details"`
}

var (
	errEmptyBody = errors.New("empty response body")
	errNotObject = errors.New("response body is not a JSON object")
)

// DecodeReply parses a response body. A JSON null body yields an empty reply;
// any other non-object body is an error.
func DecodeReply(body []byte) (*Reply, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errEmptyBody
	}
	if isNull(trimmed) {
		return &Reply{}, nil
	}
	if trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON body: %s", truncate(trimmed))
		}
		return nil, errNotObject
	}

	var wire wireReply
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	reply := &Reply{Answer: textOf(wire.Answer)}
	if !isNull(wire.GeneratedText) {
		text := textOf(wire.GeneratedText)
		reply.GeneratedText = &text
	}
	if !isNull(wire.ChartDetails) {
		reply.ChartDetails = append(json.RawMessage(nil), bytes.TrimSpace(wire.ChartDetails)...)
	}
	return reply, nil
}

// textOf returns a JSON string's value, "" for null, or the literal JSON
// text for any other type.
func textOf(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
