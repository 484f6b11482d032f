// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/compy-tui/internal/assistant"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	// RoleUser is a message typed by the user.
	RoleUser Role = "user"
	// RoleAssistant is a response from the assistant.
	RoleAssistant Role = "assistant"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents one entry in a conversation. Assistant messages carry
// the tool results produced while answering, so product cards stay attached
// to the exchange that found them.
type Message struct {
	ID          string
	Role        Role
	Timestamp   time.Time
	Content     string
	IsStreaming bool
	ToolResults []assistant.ToolResult

	// streamContent accumulates tokens during streaming.
	streamContent strings.Builder
}

// NewUserMessage creates a message from user input.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Timestamp: time.Now(),
		Content:   content,
	}
}

// NewAssistantMessage creates an empty assistant message ready for streaming.
func NewAssistantMessage() *Message {
	return &Message{
		ID:          generateID(),
		Role:        RoleAssistant,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// AppendToken adds a streamed token to the message.
func (m *Message) AppendToken(token string) {
	if m.IsStreaming {
		m.streamContent.WriteString(token)
	}
}

// AttachToolResult records one completed tool invocation on this message.
func (m *Message) AttachToolResult(result assistant.ToolResult) {
	m.ToolResults = append(m.ToolResults, result)
}

// FinalizeStream completes streaming and moves accumulated content into
// Content. Safe to call on a message that was never streaming.
func (m *Message) FinalizeStream() {
	if !m.IsStreaming {
		return
	}
	m.Content = m.streamContent.String()
	m.streamContent.Reset()
	m.IsStreaming = false
}

// GetDisplayContent returns the text to render, accounting for streaming.
func (m *Message) GetDisplayContent() string {
	if m.IsStreaming {
		return m.streamContent.String()
	}
	return m.Content
}

// IsEmpty reports whether the message has no visible text yet.
func (m *Message) IsEmpty() bool {
	return strings.TrimSpace(m.GetDisplayContent()) == ""
}

// HasProducts reports whether any tool result attached products.
func (m *Message) HasProducts() bool {
	for _, r := range m.ToolResults {
		if len(r.Products) > 0 {
			return true
		}
	}
	return false
}

// Products flattens the products of all attached tool results in order.
func (m *Message) Products() []assistant.Product {
	var out []assistant.Product
	for _, r := range m.ToolResults {
		out = append(out, r.Products...)
	}
	return out
}

// Preview returns the first n runes of the display content.
func (m *Message) Preview(n int) string {
	content := m.GetDisplayContent()
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n]) + "..."
}

// generateID returns a unique message identifier.
func generateID() string {
	return "msg_" + uuid.NewString()
}
