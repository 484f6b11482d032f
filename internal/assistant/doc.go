// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the Compy product-search
// assistant. It streams chat responses over SSE and decodes the product
// payloads the backend's search tool returns.
//
// # Key Types
//
//   - Client: HTTP client for the chat endpoint with pooled transports
//   - StreamEvent: one decoded SSE event (text delta or tool result)
//   - Product: a product record from the search tool
//   - APIError: non-2xx response with the body preserved for error decoding
//
// # Usage
//
// Create a client and stream a conversation:
//
//	client := assistant.New(cfg.API.BaseURL)
//	err := client.ChatStream(ctx, history, func(ev assistant.StreamEvent) {
//	    // handle text deltas and tool results
//	})
//
// Rate-limit responses (429) keep their body verbatim in APIError.Detail so
// the ratelimit package can extract the retry window.
package assistant
