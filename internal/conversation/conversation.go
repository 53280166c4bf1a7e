// Package conversation holds the ordered message list of a chat and the
// result payload shown next to it.
package conversation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ID is a stable message handle. It stays valid however many messages are
// appended after it.
type ID string

// ErrUnknownMessage is returned when patching a handle the store never issued.
var ErrUnknownMessage = errors.New("unknown message")

// Message is one entry of the conversation.
type Message struct {
	ID   ID
	Role Role
	Text string
}

// Result is the payload of the most recent successful exchange.
// A nil field means the backend did not provide it.
type Result struct {
	GeneratedText *string
	ChartDetails  json.RawMessage
}

// Empty reports whether neither field is present.
func (r Result) Empty() bool {
	return r.GeneratedText == nil && len(r.ChartDetails) == 0
}

// Clone returns a deep copy so snapshots never share the chart bytes.
func (r Result) Clone() Result {
	out := Result{}
	if r.GeneratedText != nil {
		text := *r.GeneratedText
		out.GeneratedText = &text
	}
	if r.ChartDetails != nil {
		out.ChartDetails = append(json.RawMessage(nil), r.ChartDetails...)
	}
	return out
}

// Conversation is an append-only message list whose entries can be patched in
// place by handle. It is not safe for concurrent use; one owner mutates it.
type Conversation struct {
	messages []Message
	index    map[ID]int
	newID    func() ID
}

// New creates an empty conversation.
func New() *Conversation {
	return &Conversation{
		index: make(map[ID]int),
		newID: func() ID { return ID(uuid.NewString()) },
	}
}

// Append adds a message at the end and returns its handle.
func (c *Conversation) Append(role Role, text string) ID {
	id := c.newID()
	c.index[id] = len(c.messages)
	c.messages = append(c.messages, Message{ID: id, Role: role, Text: text})
	return id
}

// Patch replaces the text of the message with the given handle. The role is
// left unchanged.
func (c *Conversation) Patch(id ID, text string) error {
	pos, ok := c.index[id]
	if !ok {
		return fmt.Errorf("patch %s: %w", id, ErrUnknownMessage)
	}
	c.messages[pos].Text = text
	return nil
}

// Messages returns a copy of the messages in order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Empty reports whether no message was ever appended.
func (c *Conversation) Empty() bool {
	return len(c.messages) == 0
}
