// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/compy-tui/internal/assistant"
)

// =============================================================================
// STREAM MESSAGES
// =============================================================================

// Every stream message carries the generation it belongs to. Handlers drop
// messages whose generation is not current, so chunks from a cancelled
// request can never touch a newer exchange.

// StreamEventMsg delivers one decoded event from the chat stream.
type StreamEventMsg struct {
	Generation int
	Event      assistant.StreamEvent
}

// StreamCompleteMsg signals that the stream finished normally.
type StreamCompleteMsg struct {
	Generation int
}

// StreamErrorMsg signals that the stream failed.
type StreamErrorMsg struct {
	Generation int
	Err        error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SuggestionMsg carries a suggestion selected on the welcome screen. It is
// produced by the bus subscription wired at composition time.
type SuggestionMsg struct {
	Text string
}

// ErrorDismissMsg clears the error banner.
type ErrorDismissMsg struct{}
