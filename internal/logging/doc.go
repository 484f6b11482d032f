// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the application logger. The terminal belongs
// to the TUI, so all output goes to a log file.
package logging
