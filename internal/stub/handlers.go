package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// chatReply is the body of a successful /analyst_chat response. Absent
// optional fields are sent as JSON null.
type chatReply struct {
	Answer        string          `json:"answer"`
	GeneratedText *string         `json:"generated_text"`
	ChartDetails  json.RawMessage `json:"chart_details"`
}

// chatRequest is the client's request body with message required: a missing or
// null field is rejected rather than read as "".
type chatRequest struct {
	Message *string `json:"message"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// Reply shapes, chosen uniformly per request.
const (
	shapeText      = "text"
	shapeChart     = "chart"
	shapeTextChart = "text_chart"
)

// AnswerFor is the canned answer for a message.
func AnswerFor(message string) string {
	return fmt.Sprintf("dummy response to: %s", message)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Detail: "method not allowed"})
		return
	}

	var req chatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "invalid request body: " + err.Error()})
		return
	}
	if req.Message == nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "field required: message"})
		return
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-r.Context().Done():
			timer.Stop()
			return
		}
	}

	reply := s.buildReply(*req.Message)
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) buildReply(message string) chatReply {
	s.mu.Lock()
	choice := s.rng.Intn(3)
	text := s.texts[s.rng.Intn(len(s.texts))]
	chart := s.charts[s.rng.Intn(len(s.charts))]
	s.mu.Unlock()

	reply := chatReply{Answer: AnswerFor(message)}

	var shape string
	switch choice {
	case 0:
		shape = shapeText
		reply.GeneratedText = &text
	case 1:
		shape = shapeChart
		reply.ChartDetails = chart
	default:
		shape = shapeTextChart
		reply.GeneratedText = &text
		reply.ChartDetails = chart
	}
	s.metrics.replies.WithLabelValues(shape).Inc()

	s.logger.Debug().
		Str("shape", shape).
		Int("message_length", len(message)).
		Msg("Chat reply built")

	return reply
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, strings.TrimSpace(err.Error()), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
