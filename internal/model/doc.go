// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: append-only container for a chat session
//   - Message: single message with role, content and attached tool results
//   - Role: message role enumeration (user, assistant)
//
// # Usage
//
// Build a conversation as a stream arrives:
//
//	conv := &model.Conversation{}
//	conv.AddUserMessage("iPhone 13 por menos de 2000 soles")
//	conv.AddAssistantMessage()
//	conv.AppendToLast("Encontré ")
//	conv.FinalizeLast()
//
// Streaming messages accumulate tokens in a builder; FinalizeStream settles
// the content and marks the message complete.
package model
