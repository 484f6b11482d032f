// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT TYPES
// =============================================================================

// Product is a single product record returned by the search tool.
// Field names follow the backend's JSON wire format.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Price    Price  `json:"price"`
	Category string `json:"category"`

	ProductURL string `json:"product_url"`
	ImageURL   string `json:"image_url,omitempty"`

	Color      string `json:"color,omitempty"`
	Capacity   string `json:"capacity,omitempty"`
	Memory     string `json:"memory,omitempty"`
	ScreenSize string `json:"screen_size,omitempty"`
	Weight     string `json:"weight,omitempty"`
	Power      string `json:"power,omitempty"`

	FeaturesMarkdown       string `json:"features_markdown,omitempty"`
	SpecificationsMarkdown string `json:"specifications_markdown,omitempty"`
	ViewProductLink        string `json:"view_product_link,omitempty"`
}

// DetailURL returns the link a buyer should follow for this product,
// preferring the explicit view link over the catalog URL.
func (p *Product) DetailURL() string {
	if p.ViewProductLink != "" {
		return p.ViewProductLink
	}
	return p.ProductURL
}

// ToolResult is the payload of one completed tool invocation.
type ToolResult struct {
	Products []Product `json:"products"`
}

// =============================================================================
// PRICE
// =============================================================================

// Price accepts both the numeric and the pre-formatted string encodings the
// backend emits. A numeric price renders with two decimals and the local
// currency prefix; a string price renders verbatim.
type Price struct {
	amount  decimal.Decimal
	raw     string
	numeric bool
}

// NewPrice creates a numeric price. Used by tests and fixtures.
func NewPrice(amount decimal.Decimal) Price {
	return Price{amount: amount, numeric: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*p = Price{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		// Some feeds quote plain numbers
		if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
			*p = Price{amount: d, numeric: true}
			return nil
		}
		*p = Price{raw: strings.TrimSpace(s)}
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*p = Price{amount: d, numeric: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(p.amount.String()), nil
	}
	return json.Marshal(p.raw)
}

// IsZero reports whether no price was provided.
func (p Price) IsZero() bool {
	return !p.numeric && p.raw == ""
}

// Display returns the price formatted for presentation.
func (p Price) Display() string {
	if p.numeric {
		return "S/ " + p.amount.StringFixed(2)
	}
	return p.raw
}

// Amount returns the numeric value and whether one is available.
func (p Price) Amount() (decimal.Decimal, bool) {
	return p.amount, p.numeric
}
