// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation screen: a bubbletea model with
// explicit session states and generation-guarded streaming.
//
// # Session States
//
//   - StateIdle: waiting for input
//   - StateSubmitting: request sent, no chunks yet
//   - StateStreaming: assistant response arriving
//   - StateError: last request failed, banner visible
//
// # Streaming
//
// Each submission starts a goroutine that forwards stream events into the
// bubbletea loop as generation-tagged messages. The guard bumps the
// generation on every new submission and on stop, so chunks from an
// abandoned stream are discarded instead of corrupting the next response.
package chat
