// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the vertical space taken by header, input and hints.
const chromeHeight = 7

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Iniciando..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.welcomeVisible() {
		b.WriteString(m.renderWelcome())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	if m.lastError != nil {
		b.WriteString(m.errorBanner.Render(*m.lastError))
		b.WriteString("\n")
	}

	if m.state == StateSubmitting {
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.StatusText.Render(" Buscando productos..."))
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	return b.String()
}

// renderHeader draws the brand line.
func (m *Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("Compy AI")
	sub := m.theme.StatusText.Render("  comparador de precios")
	return m.theme.Header.Width(m.width).Render(brand + sub)
}

// renderWelcome centers the suggestion chips in the scroll area.
func (m *Model) renderWelcome() string {
	return lipgloss.Place(
		m.width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center,
		m.suggestions.View(),
	)
}

// renderInput draws the input box and the key hints.
func (m *Model) renderInput() string {
	box := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	hint := "enter enviar · esc "
	switch m.state {
	case StateSubmitting, StateStreaming:
		hint += "detener"
	case StateError:
		hint += "cerrar error"
	default:
		hint += "salir del scroll"
	}
	hint += " · ctrl+c salir"

	return box + "\n" + m.theme.InputHint.Render(hint)
}
