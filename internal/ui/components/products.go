// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/compy-tui/internal/assistant"
	"github.com/jeranaias/compy-tui/internal/ui/styles"
)

// =============================================================================
// PRODUCT LIST
// =============================================================================

// ProductList renders the product cards attached to an assistant message.
type ProductList struct {
	theme    *styles.Theme
	width    int
	features *glamour.TermRenderer
}

// NewProductList creates a product list for the given width.
func NewProductList(theme *styles.Theme, width int) *ProductList {
	return &ProductList{
		theme:    theme,
		width:    width,
		features: newFeatureRenderer(width),
	}
}

// SetWidth resizes the list.
func (l *ProductList) SetWidth(width int) {
	l.width = width
	l.features = newFeatureRenderer(width)
}

func newFeatureRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(cardInnerWidth(width)),
	)
	if err != nil {
		return nil
	}
	return r
}

// Render draws all products as cards.
func (l *ProductList) Render(products []assistant.Product) string {
	if len(products) == 0 {
		return ""
	}
	cards := make([]string, 0, len(products))
	for i := range products {
		cards = append(cards, l.renderCard(&products[i]))
	}
	return strings.Join(cards, "\n")
}

// renderCard draws one product.
func (l *ProductList) renderCard(p *assistant.Product) string {
	var b strings.Builder

	b.WriteString(l.theme.ProductTitle.Render(p.Title))

	meta := joinNonEmpty(" · ", p.Brand, p.Model, p.Category)
	if meta != "" {
		b.WriteString("\n")
		b.WriteString(l.theme.ProductMeta.Render(meta))
	}

	if !p.Price.IsZero() {
		b.WriteString("\n")
		b.WriteString(l.theme.ProductPrice.Render(p.Price.Display()))
	}

	if specs := l.renderSpecs(p); specs != "" {
		b.WriteString("\n")
		b.WriteString(specs)
	}

	if p.FeaturesMarkdown != "" && l.features != nil {
		if rendered, err := l.features.Render(p.FeaturesMarkdown); err == nil {
			b.WriteString("\n")
			b.WriteString(strings.TrimRight(rendered, "\n"))
		}
	}

	if url := p.DetailURL(); url != "" {
		b.WriteString("\n")
		b.WriteString(l.theme.ProductLink.Render("Ver producto ↗ " + url))
	}

	return l.theme.ProductCard.Width(cardInnerWidth(l.width) + 2).Render(b.String())
}

// renderSpecs draws the short attribute line for a product.
func (l *ProductList) renderSpecs(p *assistant.Product) string {
	specs := joinNonEmpty("  ", p.Color, p.Capacity, p.Memory, p.ScreenSize, p.Weight, p.Power)
	if specs == "" {
		return ""
	}
	return l.theme.ProductMeta.Render(specs)
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func cardInnerWidth(width int) int {
	w := width - 4
	if w < 16 {
		w = 16
	}
	return w
}
