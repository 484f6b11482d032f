// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads application configuration from a TOML file layered
// with environment overrides. Configuration is read once at startup.
//
// Precedence, lowest to highest: built-in defaults, the TOML file, then
// COMPY_* environment variables.
package config
