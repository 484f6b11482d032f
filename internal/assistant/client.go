// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultMaxToolSteps caps the number of tool invocations the backend
	// may chain for a single user message.
	DefaultMaxToolSteps = 3

	// MaxErrorBodySize limits how much of an error response body is read.
	MaxErrorBodySize = 1 * 1024 * 1024
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConfigured indicates the client has no endpoint URL.
	ErrNotConfigured = errors.New("assistant endpoint not configured")

	// ErrRateLimited indicates the backend returned 429.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates a 5xx response from the backend.
	ErrServerError = errors.New("assistant server error")
)

// APIError is a non-2xx response from the assistant endpoint. The raw body
// is preserved in Detail so rate-limit metadata embedded in it survives.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("assistant request failed (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("assistant request failed (%d)", e.Status)
}

// Is allows comparison against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case ErrServerError:
		return e.Status >= 500
	}
	return false
}

// =============================================================================
// SHARED HTTP CLIENT
// =============================================================================

// Shared streaming client with connection pooling. It carries no global
// timeout; stream lifetime is bounded by the request context.
var (
	sharedStreamingClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Compy assistant chat endpoint.
type Client struct {
	baseURL      string
	maxToolSteps int
	logger       zerolog.Logger
}

// New creates a client for the given base URL (no trailing slash required).
func New(baseURL string) *Client {
	return &Client{
		baseURL:      trimTrailingSlash(baseURL),
		maxToolSteps: DefaultMaxToolSteps,
		logger:       zerolog.Nop(),
	}
}

// WithMaxToolSteps overrides the tool-step cap sent with each request.
func (c *Client) WithMaxToolSteps(n int) *Client {
	if n > 0 {
		c.maxToolSteps = n
	}
	return c
}

// WithLogger attaches a logger for stream diagnostics.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger
	return c
}

// IsConfigured reports whether an endpoint URL is set.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// BaseURL returns the configured endpoint base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MaxToolSteps returns the configured tool-step cap.
func (c *Client) MaxToolSteps() int {
	return c.maxToolSteps
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage is one entry of the conversation history sent to the backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the POST body for the /chat endpoint.
type chatRequest struct {
	Messages []ChatMessage `json:"messages"`
	MaxSteps int           `json:"maxSteps"`
}

// =============================================================================
// ERROR RESPONSE HANDLING
// =============================================================================

// handleErrorResponse maps a non-2xx status to a typed error. The body is
// kept verbatim: 429 responses embed resetSeconds / reset fields that the
// rate-limit decoder extracts downstream.
func (c *Client) handleErrorResponse(status int, body []byte) error {
	detail := string(body)

	c.logger.Warn().
		Int("status", status).
		Int("body_len", len(body)).
		Msg("assistant request failed")

	return &APIError{Status: status, Detail: detail}
}
