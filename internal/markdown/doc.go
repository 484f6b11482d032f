// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders assistant responses for the terminal.
//
// The pipeline mirrors the web client's: GitHub-flavored markdown is parsed
// with raw HTML admitted, the resulting tree is sanitized against an
// explicit allow-list, then lowered to a flat node list and rendered through
// an override table keyed by node kind. Rendering is pure; the same input
// always produces the same output.
//
// # Key Types
//
//   - Renderer: the full markdown-to-terminal pipeline for one wrap width
//   - Node: one lowered block (text, heading, list, code, table, image, CTA)
//   - Override: custom renderer for a single node kind
//
// # Usage
//
// Render a response at the current viewport width:
//
//	r := markdown.New(width)
//	out := r.Render(message.GetDisplayContent())
//
// Links containing ProductDetailMarker render as call-to-action buttons
// instead of plain links. Images are never fetched; they render as their
// alt text with the source URL.
package markdown
