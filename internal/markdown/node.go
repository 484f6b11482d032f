// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

// =============================================================================
// NODE KINDS
// =============================================================================

// Kind identifies the variant of a lowered markdown node.
type Kind int

const (
	// KindText is a paragraph of inline-styled text.
	KindText Kind = iota
	// KindHeading is a section heading.
	KindHeading
	// KindList is a bullet or ordered list.
	KindList
	// KindCode is a fenced or indented code block.
	KindCode
	// KindQuote is a blockquote.
	KindQuote
	// KindRule is a thematic break.
	KindRule
	// KindImage is an image reference. Images are never fetched.
	KindImage
	// KindTable is a GFM table.
	KindTable
	// KindCTA is a product call-to-action link.
	KindCTA
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindCode:
		return "code"
	case KindQuote:
		return "quote"
	case KindRule:
		return "rule"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	case KindCTA:
		return "cta"
	}
	return "unknown"
}

// =============================================================================
// NODE
// =============================================================================

// Node is one block of lowered markdown. Only the fields relevant to its
// Kind are populated.
type Node struct {
	Kind Kind

	// Text holds the content for text, heading, code and quote nodes.
	Text string

	// Level is the heading level (1-6).
	Level int

	// Ordered marks an ordered list; Items are the rendered list entries.
	Ordered bool
	Items   []string

	// Alt and Src describe an image node. Alt defaults to "Product image".
	Alt string
	Src string

	// Href and Label describe a CTA node.
	Href  string
	Label string

	// Header and Rows hold table content, row-major.
	Header []string
	Rows   [][]string
}
