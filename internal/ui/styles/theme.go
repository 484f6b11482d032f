// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// COLOR PALETTE
// =============================================================================

var (
	ColorPrimary   = lipgloss.Color("63")  // brand purple
	ColorAccent    = lipgloss.Color("39")  // link blue
	ColorUser      = lipgloss.Color("33")  // user bubble blue
	ColorAssistant = lipgloss.Color("99")  // assistant purple
	ColorMuted     = lipgloss.Color("245") // secondary text
	ColorBorder    = lipgloss.Color("240")
	ColorError     = lipgloss.Color("196")
	ColorWarning   = lipgloss.Color("214")
	ColorSuccess   = lipgloss.Color("42")
	ColorSurface   = lipgloss.Color("236")
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application.
type Theme struct {
	Width  int
	Height int

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	BubbleMeta      lipgloss.Style
	Placeholder     lipgloss.Style

	InputContainer lipgloss.Style
	InputHint      lipgloss.Style

	ErrorBox       lipgloss.Style
	ErrorTitle     lipgloss.Style
	ErrorDetail    lipgloss.Style
	RateLimitBox   lipgloss.Style
	RateLimitTitle lipgloss.Style

	SuggestionChip lipgloss.Style
	SuggestionKey  lipgloss.Style
	WelcomeTitle   lipgloss.Style
	WelcomeText    lipgloss.Style

	ProductCard  lipgloss.Style
	ProductTitle lipgloss.Style
	ProductMeta  lipgloss.Style
	ProductPrice lipgloss.Style
	ProductLink  lipgloss.Style

	Spinner    lipgloss.Style
	StatusText lipgloss.Style
}

// NewTheme creates the default theme sized for the given terminal.
func NewTheme(width, height int) *Theme {
	return &Theme{
		Width:  width,
		Height: height,

		Header: lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorder),
		HeaderBrand: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),

		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(ColorUser).
			Padding(0, 1),
		AssistantBubble: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorAssistant).
			Padding(0, 1),
		BubbleMeta:  lipgloss.NewStyle().Foreground(ColorMuted),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(ColorMuted),

		InputContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		InputHint: lipgloss.NewStyle().Foreground(ColorMuted),

		ErrorBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1),
		ErrorTitle:  lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		ErrorDetail: lipgloss.NewStyle().Foreground(ColorMuted),
		RateLimitBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1),
		RateLimitTitle: lipgloss.NewStyle().Bold(true).Foreground(ColorWarning),

		SuggestionChip: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		SuggestionKey: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		WelcomeTitle:  lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		WelcomeText:   lipgloss.NewStyle().Foreground(ColorMuted),

		ProductCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		ProductTitle: lipgloss.NewStyle().Bold(true),
		ProductMeta:  lipgloss.NewStyle().Foreground(ColorMuted),
		ProductPrice: lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess),
		ProductLink:  lipgloss.NewStyle().Foreground(ColorAccent).Underline(true),

		Spinner:    lipgloss.NewStyle().Foreground(ColorPrimary),
		StatusText: lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// Resize updates the layout dimensions.
func (t *Theme) Resize(width, height int) {
	t.Width = width
	t.Height = height
}
