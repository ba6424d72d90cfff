package richtext

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
)

// RenderMarkdown exports the document as markdown. Underline has no
// markdown syntax and is written as <u>; paragraphs aligned other than
// left are wrapped in a div carrying the alignment. Markdown syntax in the
// text itself is backslash-escaped.
func RenderMarkdown(doc Document) (string, error) {
	var buf bytes.Buffer
	m := md.NewMarkdown(&buf)
	for _, n := range doc {
		writeMarkdownBlock(m, n)
	}
	if err := m.Build(); err != nil {
		return "", fmt.Errorf("richtext: render markdown: %w", err)
	}
	return buf.String(), nil
}

func writeMarkdownBlock(m *md.Markdown, n Node) {
	if n.IsText() {
		m.PlainText(inlineMarkdown([]Node{n}))
		return
	}

	switch n.Type {
	case BlockHeadingOne:
		m.H1(alignedMarkdown(n))
	case BlockHeadingTwo:
		m.H2(alignedMarkdown(n))
	case BlockHeadingThree:
		m.H3(alignedMarkdown(n))
	case BlockNumberedList:
		m.OrderedList(listItems(n.Children)...)
	case BlockBulletedList:
		m.BulletList(listItems(n.Children)...)
	default:
		m.PlainText(alignedMarkdown(n))
	}
	m.LF()
}

func alignedMarkdown(n Node) string {
	text := inlineMarkdown(n.Children)
	if a := n.EffectiveAlign(); a != AlignLeft {
		text = fmt.Sprintf(`<div align="%s">%s</div>`, a, text)
	}
	return text
}

func listItems(children []Node) []string {
	items := make([]string, 0, len(children))
	for _, c := range children {
		items = append(items, inlineMarkdown([]Node{c}))
	}
	return items
}

// inlineMarkdown flattens nodes to one line of inline markdown. Nested
// elements are separated by a space.
func inlineMarkdown(nodes []Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if n.IsElement() {
			if i > 0 && sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(inlineMarkdown(n.Children))
			continue
		}
		sb.WriteString(markLeaf(n))
	}
	return sb.String()
}

// markdownEscaper escapes characters that start inline markup anywhere in
// a line.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"~", `\~`,
	"|", `\|`,
)

// escapeMarkdown escapes text for inline use. A leading list marker or
// ordered-list number is escaped as well.
func escapeMarkdown(text string) string {
	text = markdownEscaper.Replace(text)
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		return `\` + text
	}
	digits := len(text) - len(strings.TrimLeft(text, "0123456789"))
	if digits > 0 && digits < len(text) && (text[digits] == '.' || text[digits] == ')') {
		return text[:digits] + `\` + text[digits:]
	}
	return text
}

func markLeaf(n Node) string {
	if n.Text == "" {
		return ""
	}
	text := escapeMarkdown(n.Text)
	if n.Bold {
		text = md.Bold(text)
	}
	if n.Italic {
		text = md.Italic(text)
	}
	if n.Underline {
		text = "<u>" + text + "</u>"
	}
	return text
}
