// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// =============================================================================
// STREAMING CONSTANTS
// =============================================================================

// MaxChunkSize is the maximum allowed size for a single SSE event (64KB).
const MaxChunkSize = 64 * 1024

// Event types emitted by the chat endpoint.
const (
	eventText       = "text"
	eventToolResult = "tool_result"
)

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamEvent is one decoded event from the chat stream. Exactly one of the
// payload fields is set: Content for a text delta, Products for a completed
// tool invocation.
type StreamEvent struct {
	Type     string    `json:"type"`
	Content  string    `json:"content,omitempty"`
	Products []Product `json:"products,omitempty"`
	Err      error     `json:"-"`
}

// IsText reports whether the event carries a text delta.
func (e *StreamEvent) IsText() bool {
	return e.Type == eventText
}

// IsToolResult reports whether the event carries tool products.
func (e *StreamEvent) IsToolResult() bool {
	return e.Type == eventToolResult
}

// StreamCallback is called for each decoded event.
type StreamCallback func(event StreamEvent)

// StreamError wraps an error that occurred mid-stream, preserving any text
// received before the failure.
type StreamError struct {
	Partial string
	Err     error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Partial != "" {
		return fmt.Sprintf("stream error (partial content received: %d chars): %v", len(e.Partial), e.Err)
	}
	return fmt.Sprintf("stream error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{reader: bufio.NewReader(r)}
}

// ReadEvent reads the next SSE event and returns its data payload.
// Returns io.EOF when the stream ends.
func (s *SSEReader) ReadEvent() ([]byte, error) {
	var dataLines [][]byte
	total := 0

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				if len(dataLines) > 0 {
					return bytes.Join(dataLines, []byte("\n")), nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		if bytes.HasPrefix(line, []byte("data:")) {
			data := bytes.TrimSpace(line[5:])
			total += len(data)
			if total > MaxChunkSize {
				return nil, fmt.Errorf("sse event too large: %d bytes", total)
			}
			dataLines = append(dataLines, data)
		}
		// Ignore other fields (event:, id:, retry:, comments)
	}
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// ChatStream posts the conversation history to the chat endpoint and invokes
// the callback for each decoded event. Returns when the backend signals
// [DONE], the stream ends, or the context is cancelled.
func (c *Client) ChatStream(ctx context.Context, messages []ChatMessage, callback StreamCallback) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	reqBody := chatRequest{
		Messages: messages,
		MaxSteps: c.maxToolSteps,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := sharedStreamingClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodySize))
		return c.handleErrorResponse(resp.StatusCode, body)
	}

	return c.processStream(ctx, resp.Body, callback)
}

// processStream reads and decodes the SSE stream.
func (c *Client) processStream(ctx context.Context, body io.Reader, callback StreamCallback) error {
	reader := NewSSEReader(body)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := reader.ReadEvent()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		if bytes.Equal(data, []byte("[DONE]")) {
			return nil
		}

		var event StreamEvent
		if err := json.Unmarshal(data, &event); err != nil {
			// Skip malformed events
			c.logger.Debug().Err(err).Msg("skipping malformed stream event")
			continue
		}

		callback(event)
	}
}

// =============================================================================
// CHANNEL-BASED STREAMING
// =============================================================================

// ChatStreamChan performs a streaming chat and returns a channel of events.
// The event channel is closed when streaming completes; a terminal error, if
// any, is delivered on the error channel before both close.
func (c *Client) ChatStreamChan(ctx context.Context, messages []ChatMessage) (<-chan StreamEvent, <-chan error) {
	eventChan := make(chan StreamEvent, 64)
	errChan := make(chan error, 1)

	go func() {
		defer close(eventChan)
		defer close(errChan)

		err := c.ChatStream(ctx, messages, func(event StreamEvent) {
			select {
			case eventChan <- event:
			case <-ctx.Done():
			}
		})

		if err != nil {
			// Buffered; never blocks
			errChan <- err
		}
	}()

	return eventChan, errChan
}
