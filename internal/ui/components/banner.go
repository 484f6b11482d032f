// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/compy-tui/internal/ratelimit"
	"github.com/jeranaias/compy-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BANNER
// =============================================================================

// ErrorBanner renders stream failures. Rate limits get a distinct surface
// with the decoded retry message.
type ErrorBanner struct {
	theme *styles.Theme
	width int
}

// NewErrorBanner creates a banner for the given width.
func NewErrorBanner(theme *styles.Theme, width int) *ErrorBanner {
	return &ErrorBanner{theme: theme, width: width}
}

// SetWidth resizes the banner.
func (b *ErrorBanner) SetWidth(width int) {
	b.width = width
}

// Render draws the banner for a decoded error.
func (b *ErrorBanner) Render(info ratelimit.Info) string {
	if info.IsRateLimit {
		body := b.theme.RateLimitTitle.Render("Demasiadas consultas") + "\n" +
			info.Message() + "\n" +
			b.theme.ErrorDetail.Render("esc para cerrar · enter para reintentar")
		return b.theme.RateLimitBox.Width(bannerWidth(b.width)).Render(body)
	}

	body := b.theme.ErrorTitle.Render("Algo salió mal") + "\n" +
		b.theme.ErrorDetail.Render(truncate(info.Message(), 200)) + "\n" +
		b.theme.ErrorDetail.Render("esc para cerrar · enter para reintentar")
	return b.theme.ErrorBox.Width(bannerWidth(b.width)).Render(body)
}

func bannerWidth(width int) int {
	w := width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// truncate shortens long error details for the banner.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
