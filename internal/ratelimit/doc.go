// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ratelimit classifies assistant errors and extracts retry windows
// from rate-limit response bodies.
//
// Detection matches a 429 status code or the phrase "too many requests"
// anywhere in the error text. The retry window comes from an embedded
// "resetSeconds" field, then an absolute "reset" timestamp, then a
// 60-second default.
package ratelimit
