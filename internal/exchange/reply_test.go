package exchange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReply(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name      string
		body      string
		answer    string
		generated *string
		chart     string
	}{
		{
			name:      "all fields",
			body:      `{"answer":"42","generated_text":"g","chart_details":{"x":1}}`,
			answer:    "42",
			generated: str("g"),
			chart:     `{"x":1}`,
		},
		{
			name: "empty object",
			body: `{}`,
		},
		{
			name: "null body",
			body: `null`,
		},
		{
			name: "explicit nulls",
			body: `{"answer":null,"generated_text":null,"chart_details":null}`,
		},
		{
			name:   "numeric answer keeps literal text",
			body:   `{"answer":42}`,
			answer: "42",
		},
		{
			name:      "empty generated text is present",
			body:      `{"answer":"a","generated_text":""}`,
			answer:    "a",
			generated: str(""),
		},
		{
			name:   "chart array passes through",
			body:   ` {"answer":"a","chart_details":[1, 2]} `,
			answer: "a",
			chart:  `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := DecodeReply([]byte(tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.answer, reply.Answer)
			if tt.generated == nil {
				assert.Nil(t, reply.GeneratedText)
			} else {
				require.NotNil(t, reply.GeneratedText)
				assert.Equal(t, *tt.generated, *reply.GeneratedText)
			}
			if tt.chart == "" {
				assert.Nil(t, reply.ChartDetails)
			} else {
				assert.JSONEq(t, tt.chart, string(reply.ChartDetails))
			}
		})
	}
}

func TestDecodeReply_Errors(t *testing.T) {
	for _, body := range []string{``, `not json`, `"a string"`, `[1]`, `{"answer":`} {
		t.Run(body, func(t *testing.T) {
			_, err := DecodeReply([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("connection refused")
	err := failure("post", 0, cause)

	assert.True(t, errors.Is(err, ErrExchangeFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}
