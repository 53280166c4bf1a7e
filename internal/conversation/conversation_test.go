package conversation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_AppendAndPatch(t *testing.T) {
	c := New()
	assert.True(t, c.Empty())

	userID := c.Append(RoleUser, "hello")
	placeholderID := c.Append(RoleAssistant, ".")
	require.NotEqual(t, userID, placeholderID)

	require.NoError(t, c.Patch(placeholderID, "42"))

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{ID: userID, Role: RoleUser, Text: "hello"}, msgs[0])
	assert.Equal(t, Message{ID: placeholderID, Role: RoleAssistant, Text: "42"}, msgs[1])
}

func TestConversation_HandleSurvivesLaterAppends(t *testing.T) {
	c := New()
	c.Append(RoleUser, "first")
	first := c.Append(RoleAssistant, ".")

	// A second submission lands before the first settles.
	c.Append(RoleUser, "second")
	second := c.Append(RoleAssistant, ".")

	require.NoError(t, c.Patch(first, "answer one"))
	require.NoError(t, c.Patch(second, "answer two"))

	msgs := c.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "answer one", msgs[1].Text)
	assert.Equal(t, "answer two", msgs[3].Text)
}

func TestConversation_PatchUnknown(t *testing.T) {
	c := New()
	c.Append(RoleUser, "hi")

	err := c.Patch(ID("nope"), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMessage))
	assert.Equal(t, "hi", c.Messages()[0].Text)
}

func TestConversation_MessagesIsCopy(t *testing.T) {
	c := New()
	id := c.Append(RoleUser, "original")

	msgs := c.Messages()
	msgs[0].Text = "mutated"

	again := c.Messages()
	require.Len(t, again, 1)
	assert.Equal(t, id, again[0].ID)
	assert.Equal(t, "original", again[0].Text)
}

func TestResult_EmptyAndClone(t *testing.T) {
	assert.True(t, Result{}.Empty())

	text := "g"
	r := Result{GeneratedText: &text, ChartDetails: json.RawMessage(`{"x":1}`)}
	assert.False(t, r.Empty())

	clone := r.Clone()
	*clone.GeneratedText = "changed"
	clone.ChartDetails[2] = 'y'

	assert.Equal(t, "g", *r.GeneratedText)
	assert.JSONEq(t, `{"x":1}`, string(r.ChartDetails))
}
