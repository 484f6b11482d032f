// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/microcosm-cc/bluemonday"
)

// ProductDetailMarker identifies links that lead to a product detail page.
// Links containing it render as a call-to-action instead of a plain link.
const ProductDetailMarker = "compy.pe/galeria/producto"

// defaultImageAlt is used when an image carries no alt text.
const defaultImageAlt = "Product image"

// =============================================================================
// RENDERER
// =============================================================================

// Override maps one lowered node to rendered terminal output.
type Override func(n Node) string

// Renderer converts markdown to styled terminal text.
type Renderer struct {
	width     int
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	overrides map[Kind]Override
	styles    rendererStyles
}

// New creates a renderer for the given wrap width. Image, table and CTA
// nodes get the stock overrides; everything else falls through to the
// default renderer.
func New(width int) *Renderer {
	if width < 20 {
		width = 20
	}

	r := &Renderer{
		width: width,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(ghtml.WithUnsafe()),
		),
		policy: newPolicy(),
		styles: newRendererStyles(),
	}
	r.overrides = map[Kind]Override{
		KindImage: r.renderImage,
		KindTable: r.renderTable,
		KindCTA:   r.renderCTA,
	}
	return r
}

// WithOverride replaces the renderer for one node kind.
func (r *Renderer) WithOverride(kind Kind, o Override) *Renderer {
	r.overrides[kind] = o
	return r
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// =============================================================================
// PIPELINE
// =============================================================================

// Parse runs the full pipeline up to lowering: markdown to HTML with raw
// HTML admitted, sanitization, then lowering to the flat node list.
func (r *Renderer) Parse(content string) ([]Node, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return nil, err
	}

	sanitized := r.policy.SanitizeReader(&buf).String()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return nil, err
	}

	var nodes []Node
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, r.lowerBlock(s)...)
	})
	return nodes, nil
}

// Render converts markdown to terminal output. Parse errors degrade to the
// raw text so a malformed response is still readable.
func (r *Renderer) Render(content string) string {
	nodes, err := r.Parse(content)
	if err != nil {
		return strings.TrimSpace(content)
	}

	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		rendered := r.RenderNode(n)
		if rendered != "" {
			blocks = append(blocks, rendered)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// RenderNode renders a single node through the override table.
func (r *Renderer) RenderNode(n Node) string {
	if o, ok := r.overrides[n.Kind]; ok {
		return o(n)
	}
	return r.renderDefault(n)
}

// =============================================================================
// LOWERING
// =============================================================================

// lowerBlock converts one sanitized block element into nodes.
func (r *Renderer) lowerBlock(s *goquery.Selection) []Node {
	switch goquery.NodeName(s) {
	case "p":
		return r.lowerParagraph(s)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(goquery.NodeName(s)[1] - '0')
		return []Node{{Kind: KindHeading, Level: level, Text: r.inlineText(s)}}
	case "ul", "ol":
		return []Node{r.lowerList(s)}
	case "pre":
		text := s.Text()
		return []Node{{Kind: KindCode, Text: strings.TrimRight(text, "\n")}}
	case "blockquote":
		var parts []string
		s.Children().Each(func(_ int, child *goquery.Selection) {
			for _, n := range r.lowerBlock(child) {
				parts = append(parts, r.RenderNode(n))
			}
		})
		if len(parts) == 0 {
			parts = append(parts, strings.TrimSpace(s.Text()))
		}
		return []Node{{Kind: KindQuote, Text: strings.Join(parts, "\n")}}
	case "hr":
		return []Node{{Kind: KindRule}}
	case "table":
		return []Node{r.lowerTable(s)}
	case "img":
		return []Node{r.lowerImage(s.Get(0))}
	default:
		if text := r.inlineText(s); text != "" {
			return []Node{{Kind: KindText, Text: text}}
		}
		return nil
	}
}

// lowerParagraph splits a paragraph around its images and product links so
// those render as standalone blocks, the way the web client lifts them out
// of the text flow.
func (r *Renderer) lowerParagraph(s *goquery.Selection) []Node {
	var nodes []Node
	var text strings.Builder

	flush := func() {
		if t := strings.TrimSpace(text.String()); t != "" {
			nodes = append(nodes, Node{Kind: KindText, Text: t})
		}
		text.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			text.WriteString(n.Data)
		case n.Type != html.ElementNode:
			// comments, doctype: nothing survives sanitization anyway
		case n.Data == "img":
			flush()
			nodes = append(nodes, r.lowerImage(n))
		case n.Data == "a" && strings.Contains(attr(n, "href"), ProductDetailMarker):
			flush()
			nodes = append(nodes, Node{
				Kind:  KindCTA,
				Href:  attr(n, "href"),
				Label: strings.TrimSpace(textContent(n)),
			})
		default:
			text.WriteString(r.renderInlineNode(n))
		}
	}

	for n := s.Get(0).FirstChild; n != nil; n = n.NextSibling {
		walk(n)
	}
	flush()
	return nodes
}

// lowerList renders each list item inline.
func (r *Renderer) lowerList(s *goquery.Selection) Node {
	node := Node{Kind: KindList, Ordered: goquery.NodeName(s) == "ol"}
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		node.Items = append(node.Items, r.inlineText(li))
	})
	return node
}

// lowerTable extracts header and body cells row-major.
func (r *Renderer) lowerTable(s *goquery.Selection) Node {
	node := Node{Kind: KindTable}

	s.Find("thead tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		node.Header = append(node.Header, r.inlineText(cell))
	})

	s.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, r.inlineText(cell))
		})
		if len(cells) > 0 {
			node.Rows = append(node.Rows, cells)
		}
	})

	// Tables without an explicit thead: first row becomes the header
	if len(node.Header) == 0 && len(node.Rows) > 0 {
		node.Header = node.Rows[0]
		node.Rows = node.Rows[1:]
	}
	return node
}

// lowerImage builds an image node. Images are never fetched.
func (r *Renderer) lowerImage(n *html.Node) Node {
	alt := strings.TrimSpace(attr(n, "alt"))
	if alt == "" {
		alt = defaultImageAlt
	}
	return Node{Kind: KindImage, Alt: alt, Src: attr(n, "src")}
}

// =============================================================================
// INLINE RENDERING
// =============================================================================

// inlineText renders the inline content of a selection with styling applied.
func (r *Renderer) inlineText(s *goquery.Selection) string {
	var b strings.Builder
	for n := s.Get(0).FirstChild; n != nil; n = n.NextSibling {
		b.WriteString(r.renderInlineNode(n))
	}
	return strings.TrimSpace(b.String())
}

// renderInlineNode renders one inline node and its children.
func (r *Renderer) renderInlineNode(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type != html.ElementNode {
		return ""
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(r.renderInlineNode(c))
	}
	inner := b.String()

	switch n.Data {
	case "strong", "b":
		return r.styles.bold.Render(inner)
	case "em", "i":
		return r.styles.italic.Render(inner)
	case "del", "s":
		return r.styles.strike.Render(inner)
	case "code":
		return r.styles.code.Render(inner)
	case "br":
		return "\n"
	case "a":
		href := attr(n, "href")
		label := strings.TrimSpace(inner)
		if label == "" {
			label = href
		}
		// Product links are a CTA wherever they appear, also inside
		// list items, table cells and quotes. The compact form keeps
		// those contexts single-line.
		if strings.Contains(href, ProductDetailMarker) {
			if label == href {
				label = "Ver producto"
			}
			return r.styles.cta.Render(label + " ↗")
		}
		if href == "" || href == label {
			return r.styles.link.Render(label)
		}
		return r.styles.link.Render(label) + r.styles.linkURL.Render(" ("+href+")")
	case "img":
		// Inline images outside paragraphs degrade to their alt text
		alt := strings.TrimSpace(attr(n, "alt"))
		if alt == "" {
			alt = defaultImageAlt
		}
		return r.styles.imageAlt.Render("[" + alt + "]")
	default:
		return inner
	}
}

// =============================================================================
// HTML HELPERS
// =============================================================================

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
