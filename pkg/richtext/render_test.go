package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "bold heading",
			doc:  Document{NewElement(BlockHeadingOne, NewText("Hi", MarkBold))},
			want: `<h1 style="text-align: left"><span><strong>Hi</strong></span></h1>`,
		},
		{
			name: "headings two and three keep alignment",
			doc: Document{
				NewElement(BlockHeadingTwo, NewText("a")).WithAlign(AlignCenter),
				NewElement(BlockHeadingThree, NewText("b")).WithAlign(AlignRight),
			},
			want: `<h2 style="text-align: center"><span>a</span></h2><h3 style="text-align: right"><span>b</span></h3>`,
		},
		{
			name: "marks wrap bold then italic then underline",
			doc:  Document{NewElement(BlockParagraph, NewText("x", MarkUnderline, MarkItalic, MarkBold))},
			want: `<p style="text-align: left"><span><u><em><strong>x</strong></em></u></span></p>`,
		},
		{
			name: "bulleted list wraps each child",
			doc:  Document{NewElement(BlockBulletedList, NewText("a"), NewText("b"))},
			want: `<ul style="text-align: left"><li><span>a</span></li><li><span>b</span></li></ul>`,
		},
		{
			name: "numbered list of list items",
			doc:  Document{NewElement(BlockNumberedList, NewElement(BlockListItem, NewText("one")))},
			want: `<ol style="text-align: left"><li><p style="text-align: left"><span>one</span></p></li></ol>`,
		},
		{
			name: "unknown type renders as paragraph",
			doc:  Document{NewElement(BlockType("blockquote"), NewText("q"))},
			want: `<p style="text-align: left"><span>q</span></p>`,
		},
		{
			name: "text is escaped",
			doc:  Document{NewElement(BlockParagraph, NewText("a<b>&c"))},
			want: `<p style="text-align: left"><span>a&lt;b&gt;&amp;c</span></p>`,
		},
		{
			name: "top level text leaf",
			doc:  Document{NewText("loose", MarkItalic)},
			want: `<span><em>loose</em></span>`,
		},
		{
			name: "empty document",
			doc:  Document{},
			want: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_ListItemCount(t *testing.T) {
	list := NewElement(BlockBulletedList, NewText("a"), NewText("b"), NewText("c"))
	nodes := Render(Document{list})
	require.Len(t, nodes, 1)

	count := 0
	for c := nodes[0].FirstChild; c != nil; c = c.NextSibling {
		assert.Equal(t, "li", c.Data)
		count++
	}
	assert.Equal(t, len(list.Children), count)
}

func TestRenderHTML_FromPersistedContent(t *testing.T) {
	doc, ok := DecodeOrFallback(`[{"type":"heading-one","children":[{"text":"Hi","bold":true}]}]`)
	require.True(t, ok)

	out, err := RenderHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, `<h1 style="text-align: left"><span><strong>Hi</strong></span></h1>`, out)

	legacy, ok := DecodeOrFallback("just words")
	require.False(t, ok)
	out, err = RenderHTML(legacy)
	require.NoError(t, err)
	assert.Equal(t, `<p style="text-align: left"><span>just words</span></p>`, out)
}

func TestRenderMarkdown(t *testing.T) {
	doc := Document{
		NewElement(BlockHeadingOne, NewText("Hi", MarkBold)),
		NewElement(BlockHeadingTwo, NewText("Sub")),
		NewElement(BlockParagraph, NewText("plain "), NewText("under", MarkUnderline)),
		NewElement(BlockParagraph, NewText("centred")).WithAlign(AlignCenter),
		NewElement(BlockBulletedList, NewText("a"), NewText("b", MarkItalic)),
		NewElement(BlockNumberedList, NewElement(BlockListItem, NewText("first"))),
	}

	out, err := RenderMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, out, "# **Hi**")
	assert.Contains(t, out, "## Sub")
	assert.Contains(t, out, "plain <u>under</u>")
	assert.Contains(t, out, `<div align="center">centred</div>`)
	assert.Contains(t, out, "- a")
	assert.Contains(t, out, "*b*")
	assert.Contains(t, out, "1. first")
}

func TestRenderMarkdown_EscapesText(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{name: "emphasis characters", node: NewElement(BlockParagraph, NewText("2*3 and snake_case")), want: `2\*3 and snake\_case`},
		{name: "hash", node: NewElement(BlockParagraph, NewText("#1 pick")), want: `\#1 pick`},
		{name: "leading dash", node: NewElement(BlockParagraph, NewText("- not a list")), want: `\- not a list`},
		{name: "leading number", node: NewElement(BlockParagraph, NewText("1. not a list")), want: `1\. not a list`},
		{name: "html", node: NewElement(BlockParagraph, NewText("<b>x</b>")), want: `\<b\>x\</b\>`},
		{name: "inside bold", node: NewElement(BlockParagraph, NewText("a*b", MarkBold)), want: `**a\*b**`},
		{name: "aligned heading", node: NewElement(BlockHeadingTwo, NewText("Title")).WithAlign(AlignRight), want: `## <div align="right">Title</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderMarkdown(Document{tt.node})
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestPlainText(t *testing.T) {
	doc := Document{
		NewElement(BlockHeadingOne, NewText("Title")),
		NewElement(BlockParagraph, NewText("Hello "), NewText("world", MarkBold)),
		NewElement(BlockBulletedList, NewText("a"), NewElement(BlockListItem, NewText("b"))),
	}

	assert.Equal(t, "Title\nHello world\na\nb", PlainText(doc))
	assert.Equal(t, 5, WordCount(doc))
	assert.Equal(t, "", PlainText(nil))
}

func TestWalkAndMap(t *testing.T) {
	doc := Document{
		NewElement(BlockParagraph, NewText("a"), NewElement(BlockListItem, NewText("b"))),
		NewText("c"),
	}

	var paths [][]int
	Walk(doc, func(path []int, n Node) bool {
		if n.IsText() {
			paths = append(paths, path)
		}
		return n.Type != BlockListItem
	})
	assert.Equal(t, [][]int{{0, 0}, {1}}, paths)

	shouted := Map(doc, func(n Node) Node {
		if n.IsText() {
			n.Text += "!"
		}
		return n
	})
	assert.Equal(t, "a!\nb!\nc!", PlainText(shouted))
	assert.Equal(t, "a\nb\nc", PlainText(doc))
}
