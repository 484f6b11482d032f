// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/jeranaias/compy-tui/internal/assistant"
)

// =============================================================================
// CONVERSATION CONSTANTS
// =============================================================================

// MaxMessages caps the in-memory history before old messages are pruned.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered message history of one chat session.
// Message order is append-only.
type Conversation struct {
	Messages []*Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// AddUserMessage appends a user message and returns it.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.Messages = append(c.Messages, msg)
	c.pruneOldMessages()
	return msg
}

// AddAssistantMessage appends an empty streaming assistant message.
func (c *Conversation) AddAssistantMessage() *Message {
	msg := NewAssistantMessage()
	c.Messages = append(c.Messages, msg)
	c.pruneOldMessages()
	return msg
}

// GetLastMessage returns the most recent message, or nil when empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// AppendToLast adds a token to the last message if it is streaming.
func (c *Conversation) AppendToLast(token string) {
	if last := c.GetLastMessage(); last != nil && last.IsStreaming {
		last.AppendToken(token)
	}
}

// AttachToolResultToLast records a tool result on the assistant message at
// the tail of the history.
func (c *Conversation) AttachToolResultToLast(result assistant.ToolResult) {
	if last := c.GetLastMessage(); last != nil && last.Role == RoleAssistant {
		last.AttachToolResult(result)
	}
}

// FinalizeLast completes streaming on the last message.
func (c *Conversation) FinalizeLast() {
	if last := c.GetLastMessage(); last != nil {
		last.FinalizeStream()
	}
}

// IsEmpty reports whether no messages have been exchanged.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// MessageCount returns the number of messages in the history.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// ClearHistory removes all messages.
func (c *Conversation) ClearHistory() {
	c.Messages = nil
}

// ToChatMessages converts the history to the wire format sent to the
// backend. Assistant messages that never produced text are skipped.
func (c *Conversation) ToChatMessages() []assistant.ChatMessage {
	out := make([]assistant.ChatMessage, 0, len(c.Messages))
	for _, msg := range c.Messages {
		content := msg.GetDisplayContent()
		if msg.Role == RoleAssistant && content == "" {
			continue
		}
		out = append(out, assistant.ChatMessage{
			Role:    string(msg.Role),
			Content: content,
		})
	}
	return out
}

// pruneOldMessages drops the oldest messages beyond MaxMessages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) > MaxMessages {
		c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
	}
}
