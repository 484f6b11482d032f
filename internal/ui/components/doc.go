// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components contains the reusable view pieces of the Compy TUI:
// message bubbles, product cards, suggestion chips and error banners.
//
// Components are pure view helpers. They hold a theme and render to
// strings; all state lives in the chat model.
package components
