// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest provides the suggestion chips shown on an empty
// conversation and the bus that carries a selected suggestion from the
// welcome screen to the session wiring.
//
// The bus is created at composition time and handed to both sides
// explicitly; there is no package-level instance.
package suggest
