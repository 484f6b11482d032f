// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/compy-tui/internal/markdown"
	"github.com/jeranaias/compy-tui/internal/model"
	"github.com/jeranaias/compy-tui/internal/ui/styles"
)

// searchingPlaceholder is shown while an assistant message has produced no
// text yet, typically while the product search tool is running.
const searchingPlaceholder = "Buscando productos..."

// streamingCursor marks the live end of a streaming message.
const streamingCursor = "▌"

// =============================================================================
// MESSAGE VIEW
// =============================================================================

// MessageView renders conversation messages as chat bubbles.
type MessageView struct {
	theme    *styles.Theme
	renderer *markdown.Renderer
	products *ProductList
	width    int
}

// NewMessageView creates a message view for the given width.
func NewMessageView(theme *styles.Theme, width int) *MessageView {
	bubbleWidth := contentWidth(width)
	return &MessageView{
		theme:    theme,
		renderer: markdown.New(bubbleWidth),
		products: NewProductList(theme, bubbleWidth),
		width:    width,
	}
}

// SetWidth resizes the view and its renderer.
func (v *MessageView) SetWidth(width int) {
	v.width = width
	v.renderer = markdown.New(contentWidth(width))
	v.products.SetWidth(contentWidth(width))
}

// Render draws one message.
func (v *MessageView) Render(msg *model.Message) string {
	switch msg.Role {
	case model.RoleUser:
		return v.renderUser(msg)
	default:
		return v.renderAssistant(msg)
	}
}

// RenderConversation draws the whole history.
func (v *MessageView) RenderConversation(conv *model.Conversation) string {
	if conv == nil || conv.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, conv.MessageCount())
	for _, msg := range conv.Messages {
		parts = append(parts, v.Render(msg))
	}
	return strings.Join(parts, "\n\n")
}

func (v *MessageView) renderUser(msg *model.Message) string {
	bubble := v.theme.UserBubble.MaxWidth(contentWidth(v.width)).Render(msg.Content)
	return lipgloss.PlaceHorizontal(v.width, lipgloss.Right, bubble)
}

func (v *MessageView) renderAssistant(msg *model.Message) string {
	var body string
	switch {
	case msg.IsEmpty() && msg.IsStreaming:
		body = v.theme.Placeholder.Render(searchingPlaceholder)
	case msg.IsStreaming:
		body = v.renderer.Render(msg.GetDisplayContent()) + streamingCursor
	default:
		body = v.renderer.Render(msg.GetDisplayContent())
		if body == "" {
			body = v.theme.Placeholder.Render(searchingPlaceholder)
		}
	}

	bubble := v.theme.AssistantBubble.MaxWidth(contentWidth(v.width)).Render(body)

	if msg.HasProducts() {
		cards := v.products.Render(msg.Products())
		bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, cards)
	}
	return bubble
}

// contentWidth leaves room for bubble borders and padding.
func contentWidth(width int) int {
	w := width - 6
	if w < 20 {
		w = 20
	}
	return w
}
