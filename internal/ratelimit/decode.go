// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ratelimit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultRetrySeconds is used when a rate limit carries no usable window.
const DefaultRetrySeconds = 60

// =============================================================================
// DETECTION PATTERNS
// =============================================================================

var (
	// rateLimitPattern matches the status code or the canonical phrase
	// anywhere in the error text.
	rateLimitPattern = regexp.MustCompile(`(?i)(429|too many requests)`)

	// resetSecondsPattern extracts an explicit window in seconds from the
	// JSON body embedded in the error text.
	resetSecondsPattern = regexp.MustCompile(`"resetSeconds":(\d+)`)

	// resetStampPattern extracts an absolute reset timestamp.
	resetStampPattern = regexp.MustCompile(`"reset":"([^"]+)"`)
)

// =============================================================================
// INFO
// =============================================================================

// Info is the structured surface of a decoded error.
type Info struct {
	// Raw is the original error text, preserved for non-rate-limit errors.
	Raw string

	// IsRateLimit reports whether the error is a rate limit.
	IsRateLimit bool

	// RetrySeconds is the wait before retrying; shown to the user only
	// when IsRateLimit is true. Holds the 60-second default whenever no
	// window could be extracted, including for empty input.
	RetrySeconds int
}

// Message returns the user-facing text for this error.
func (i Info) Message() string {
	if !i.IsRateLimit {
		return i.Raw
	}
	plural := "s"
	if i.RetrySeconds == 1 {
		plural = ""
	}
	return fmt.Sprintf("Please try again in %d second%s.", i.RetrySeconds, plural)
}

// =============================================================================
// DECODING
// =============================================================================

// Decode classifies an error and, for rate limits, extracts the retry window.
func Decode(err error) Info {
	if err == nil {
		return Info{RetrySeconds: DefaultRetrySeconds}
	}
	return DecodeMessage(err.Error())
}

// DecodeMessage is Decode over a raw detail string.
func DecodeMessage(detail string) Info {
	return decodeAt(detail, time.Now())
}

// decodeAt performs the decode against a fixed clock. RetrySeconds always
// carries a value; the default stands in when nothing is extractable.
func decodeAt(detail string, now time.Time) Info {
	info := Info{Raw: detail, RetrySeconds: DefaultRetrySeconds}

	if !rateLimitPattern.MatchString(detail) {
		return info
	}
	info.IsRateLimit = true
	info.RetrySeconds = retrySeconds(detail, now)
	return info
}

// retrySeconds tries each extraction source in order; the first that yields
// a value wins. A branch that fails to parse falls through to the next.
func retrySeconds(detail string, now time.Time) int {
	if strings.Contains(detail, "resetSeconds") {
		if m := resetSecondsPattern.FindStringSubmatch(detail); m != nil {
			if secs, err := strconv.Atoi(m[1]); err == nil {
				return secs
			}
		}
	}

	if strings.Contains(detail, "reset") {
		if m := resetStampPattern.FindStringSubmatch(detail); m != nil {
			if reset, err := parseStamp(m[1]); err == nil {
				secs := int(math.Ceil(reset.Sub(now).Seconds()))
				return clampSeconds(secs)
			}
		}
	}

	return DefaultRetrySeconds
}

// parseStamp accepts RFC 3339 with or without sub-second precision.
func parseStamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// clampSeconds floors the window at one second so the user never sees a
// zero or negative wait.
func clampSeconds(secs int) int {
	if secs < 1 {
		return 1
	}
	return secs
}
