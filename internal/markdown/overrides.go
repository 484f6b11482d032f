// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// STYLES
// =============================================================================

type rendererStyles struct {
	bold     lipgloss.Style
	italic   lipgloss.Style
	strike   lipgloss.Style
	code     lipgloss.Style
	link     lipgloss.Style
	linkURL  lipgloss.Style
	heading  lipgloss.Style
	quote    lipgloss.Style
	rule     lipgloss.Style
	imageAlt lipgloss.Style
	codeBox  lipgloss.Style

	tableHeader lipgloss.Style
	tableCell   lipgloss.Style
	tableZebra  lipgloss.Style
	tableBorder lipgloss.Style

	cta lipgloss.Style
}

func newRendererStyles() rendererStyles {
	return rendererStyles{
		bold:     lipgloss.NewStyle().Bold(true),
		italic:   lipgloss.NewStyle().Italic(true),
		strike:   lipgloss.NewStyle().Strikethrough(true),
		code:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		link:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		linkURL:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		quote:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		imageAlt: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		codeBox:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),

		tableHeader: lipgloss.NewStyle().Bold(true),
		tableCell:   lipgloss.NewStyle(),
		tableZebra:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
		tableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		cta: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("63")).
			Padding(0, 2),
	}
}

// =============================================================================
// DEFAULT RENDERER
// =============================================================================

// renderDefault handles every kind without an override entry.
func (r *Renderer) renderDefault(n Node) string {
	switch n.Kind {
	case KindText:
		return wordWrap(n.Text, r.width)
	case KindHeading:
		prefix := strings.Repeat("#", n.Level) + " "
		return r.styles.heading.Render(prefix + n.Text)
	case KindList:
		var b strings.Builder
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString("\n")
			}
			if n.Ordered {
				b.WriteString(fmt.Sprintf("%d. %s", i+1, item))
			} else {
				b.WriteString("• " + item)
			}
		}
		return b.String()
	case KindCode:
		return r.styles.codeBox.Render(n.Text)
	case KindQuote:
		lines := strings.Split(n.Text, "\n")
		for i, line := range lines {
			lines[i] = r.styles.quote.Render("│ " + line)
		}
		return strings.Join(lines, "\n")
	case KindRule:
		return r.styles.rule.Render(strings.Repeat("─", r.width))
	default:
		return n.Text
	}
}

// =============================================================================
// OVERRIDES
// =============================================================================

// renderImage renders the placeholder for an image. The source is shown but
// never fetched.
func (r *Renderer) renderImage(n Node) string {
	line := "[" + n.Alt + "]"
	if n.Src != "" {
		line += " " + n.Src
	}
	return r.styles.imageAlt.Render(line)
}

// renderCTA renders a product link as a call-to-action block.
func (r *Renderer) renderCTA(n Node) string {
	label := n.Label
	if label == "" {
		label = "Ver producto"
	}
	button := r.styles.cta.Render(label + " ↗")
	return button + "\n" + r.styles.linkURL.Render(n.Href)
}

// renderTable renders a bordered table with zebra-striped body rows.
func (r *Renderer) renderTable(n Node) string {
	if len(n.Header) == 0 && len(n.Rows) == 0 {
		return ""
	}

	widths := columnWidths(n)

	var b strings.Builder
	border := r.styles.tableBorder

	b.WriteString(border.Render(ruleLine("┌", "┬", "┐", widths)))
	b.WriteString("\n")

	if len(n.Header) > 0 {
		b.WriteString(r.tableRow(n.Header, widths, r.styles.tableHeader))
		b.WriteString("\n")
		b.WriteString(border.Render(ruleLine("├", "┼", "┤", widths)))
		b.WriteString("\n")
	}

	for i, row := range n.Rows {
		style := r.styles.tableCell
		if i%2 == 1 {
			style = r.styles.tableZebra
		}
		b.WriteString(r.tableRow(row, widths, style))
		b.WriteString("\n")
	}

	b.WriteString(border.Render(ruleLine("└", "┴", "┘", widths)))
	return b.String()
}

// tableRow renders one padded row.
func (r *Renderer) tableRow(cells []string, widths []int, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(r.styles.tableBorder.Render("│"))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded := " " + cell + strings.Repeat(" ", w-runewidth.StringWidth(cell)) + " "
		b.WriteString(style.Render(padded))
		b.WriteString(r.styles.tableBorder.Render("│"))
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell.
func columnWidths(n Node) []int {
	cols := len(n.Header)
	for _, row := range n.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(n.Header)
	for _, row := range n.Rows {
		measure(row)
	}
	return widths
}

// ruleLine draws a horizontal border line.
func ruleLine(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right
}

// =============================================================================
// TEXT WRAPPING
// =============================================================================

// wordWrap wraps text at word boundaries, preserving explicit newlines.
func wordWrap(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if runewidth.StringWidth(current.String())+1+runewidth.StringWidth(word) > width {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			continue
		}
		current.WriteString(" ")
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
