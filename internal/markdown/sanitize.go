// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"github.com/microcosm-cc/bluemonday"
)

// =============================================================================
// SANITIZATION POLICY
// =============================================================================

// newPolicy builds the explicit allow-list applied after raw HTML admission.
// Anything not listed here is stripped: script, style, iframes, event
// handlers, javascript: URLs.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	// Inline markup
	p.AllowElements("strong", "b", "em", "i", "del", "s", "code", "span", "br")

	// Block structure
	p.AllowElements("p", "pre", "blockquote", "hr")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("ul", "ol", "li")

	// Tables (GFM)
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")

	// Links and images, http(s) only
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)

	return p
}
