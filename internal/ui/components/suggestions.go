// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/compy-tui/internal/suggest"
	"github.com/jeranaias/compy-tui/internal/ui/styles"
)

// =============================================================================
// SUGGESTIONS
// =============================================================================

// Suggestions renders the welcome-screen chips and publishes the selected
// one on the bus it was composed with.
type Suggestions struct {
	theme *styles.Theme
	bus   *suggest.Bus
	items []string
}

// NewSuggestions creates the component. The bus is injected; this component
// only publishes, it never subscribes.
func NewSuggestions(theme *styles.Theme, bus *suggest.Bus) *Suggestions {
	return &Suggestions{
		theme: theme,
		bus:   bus,
		items: suggest.Defaults(),
	}
}

// Count returns the number of chips.
func (s *Suggestions) Count() int {
	return len(s.items)
}

// Select publishes the chip at index i. Out-of-range indexes are ignored.
func (s *Suggestions) Select(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.bus.Publish(s.items[i])
}

// View renders the welcome screen with the chips.
func (s *Suggestions) View() string {
	var b strings.Builder

	b.WriteString(s.theme.WelcomeTitle.Render("Compy AI"))
	b.WriteString("\n")
	b.WriteString(s.theme.WelcomeText.Render("Pregúntame por productos y comparo precios por ti."))
	b.WriteString("\n\n")

	for i, item := range s.items {
		key := s.theme.SuggestionKey.Render(fmt.Sprintf("%d", i+1))
		b.WriteString(s.theme.SuggestionChip.Render(key + "  " + item))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.theme.WelcomeText.Render("Escribe tu consulta o pulsa 1-4 para usar una sugerencia."))
	return b.String()
}
