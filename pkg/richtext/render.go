package richtext

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render converts a document into HTML node trees, one per top-level node.
// Text leaves become spans with strong, em and u wrapped around the text
// in that order. Headings map to h1..h3, lists wrap every child in its own
// li, and paragraphs as well as unknown block types become p. Every block
// carries an explicit text-align style.
func Render(doc Document) []*html.Node {
	out := make([]*html.Node, 0, len(doc))
	for _, n := range doc {
		out = append(out, renderNode(n))
	}
	return out
}

// RenderHTML renders the document to an HTML fragment.
func RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	for _, n := range Render(doc) {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("richtext: render html: %w", err)
		}
	}
	return buf.String(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func renderNode(n Node) *html.Node {
	if n.IsText() {
		return renderLeaf(n)
	}

	style := html.Attribute{Key: "style", Val: "text-align: " + string(n.EffectiveAlign())}
	var el *html.Node
	switch n.Type {
	case BlockHeadingOne:
		el = element(atom.H1, style)
	case BlockHeadingTwo:
		el = element(atom.H2, style)
	case BlockHeadingThree:
		el = element(atom.H3, style)
	case BlockNumberedList:
		el = element(atom.Ol, style)
	case BlockBulletedList:
		el = element(atom.Ul, style)
	default:
		el = element(atom.P, style)
	}

	for _, child := range n.Children {
		rendered := renderNode(child)
		if n.Type.IsList() {
			li := element(atom.Li)
			li.AppendChild(rendered)
			rendered = li
		}
		el.AppendChild(rendered)
	}
	return el
}

func renderLeaf(n Node) *html.Node {
	inner := &html.Node{Type: html.TextNode, Data: n.Text}
	wrap := func(a atom.Atom) {
		w := element(a)
		w.AppendChild(inner)
		inner = w
	}
	if n.Bold {
		wrap(atom.Strong)
	}
	if n.Italic {
		wrap(atom.Em)
	}
	if n.Underline {
		wrap(atom.U)
	}

	span := element(atom.Span)
	span.AppendChild(inner)
	return span
}
