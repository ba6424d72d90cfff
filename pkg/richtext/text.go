package richtext

import "strings"

// PlainText extracts the document text. Adjacent text leaves are joined
// directly and blocks are separated by newlines.
func PlainText(doc Document) string {
	return strings.Join(blockTexts(doc, false), "\n")
}

// blockTexts returns one entry per block. Inside lists every child is its
// own line, elsewhere consecutive text leaves form one line.
func blockTexts(nodes []Node, list bool) []string {
	var (
		parts []string
		run   strings.Builder
		inRun bool
	)
	flush := func() {
		if inRun {
			parts = append(parts, run.String())
			run.Reset()
			inRun = false
		}
	}
	for _, n := range nodes {
		if n.IsText() && !list {
			run.WriteString(n.Text)
			inRun = true
			continue
		}
		flush()
		if n.IsText() {
			parts = append(parts, n.Text)
			continue
		}
		parts = append(parts, strings.Join(blockTexts(n.Children, n.Type.IsList()), "\n"))
	}
	flush()
	return parts
}

// WordCount counts whitespace separated words in the document text.
func WordCount(doc Document) int {
	return len(strings.Fields(PlainText(doc)))
}
