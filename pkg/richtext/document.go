// Package richtext holds the block document model used for post bodies:
// the tree types, the persisted JSON codec, the normalizer, an editing
// session with mark/block/alignment toggles and read-only renderers.
package richtext

import "unicode/utf8"

// Kind discriminates the two node variants.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindElement
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	default:
		return "unknown"
	}
}

// BlockType is the type tag of an element. Unknown values are preserved
// and rendered as paragraphs.
type BlockType string

const (
	BlockParagraph    BlockType = "paragraph"
	BlockHeadingOne   BlockType = "heading-one"
	BlockHeadingTwo   BlockType = "heading-two"
	BlockHeadingThree BlockType = "heading-three"
	BlockNumberedList BlockType = "numbered-list"
	BlockBulletedList BlockType = "bulleted-list"
	BlockListItem     BlockType = "list-item"
)

// BlockTypes lists the known block types in toolbar order.
var BlockTypes = []BlockType{
	BlockParagraph,
	BlockHeadingOne,
	BlockHeadingTwo,
	BlockHeadingThree,
	BlockNumberedList,
	BlockBulletedList,
	BlockListItem,
}

var knownBlocks = map[BlockType]struct{}{
	BlockParagraph:    {},
	BlockHeadingOne:   {},
	BlockHeadingTwo:   {},
	BlockHeadingThree: {},
	BlockNumberedList: {},
	BlockBulletedList: {},
	BlockListItem:     {},
}

// Known reports whether t is one of the block types the renderer maps
// to a dedicated tag.
func (t BlockType) Known() bool {
	_, ok := knownBlocks[t]
	return ok
}

// IsList reports whether children of t are rendered as list items.
func (t BlockType) IsList() bool {
	return t == BlockNumberedList || t == BlockBulletedList
}

// AlignType is a block-level horizontal alignment. The zero value means
// "unset" and reads as AlignLeft.
type AlignType string

const (
	AlignLeft   AlignType = "left"
	AlignCenter AlignType = "center"
	AlignRight  AlignType = "right"
)

var Alignments = []AlignType{AlignLeft, AlignCenter, AlignRight}

// Valid reports whether a is one of left, center or right.
func (a AlignType) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// Mark is an inline formatting flag carried by text leaves.
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
)

var Marks = []Mark{MarkBold, MarkItalic, MarkUnderline}

// Valid reports whether m is a supported mark.
func (m Mark) Valid() bool {
	return m == MarkBold || m == MarkItalic || m == MarkUnderline
}

// Node is either a text leaf or an element. Kind selects which fields
// are meaningful; the other variant's fields stay at their zero values.
type Node struct {
	Kind Kind

	// text leaf
	Text      string
	Bold      bool
	Italic    bool
	Underline bool

	// element
	Type     BlockType
	Align    AlignType
	Children []Node
}

// Document is an ordered sequence of top-level nodes.
type Document []Node

// NewText builds a text leaf with the given marks switched on.
func NewText(text string, marks ...Mark) Node {
	n := Node{Kind: KindText, Text: text}
	for _, m := range marks {
		n.setMark(m, true)
	}
	return n
}

// NewElement builds an element; an empty type becomes a paragraph.
func NewElement(t BlockType, children ...Node) Node {
	if t == "" {
		t = BlockParagraph
	}
	if children == nil {
		children = []Node{}
	}
	return Node{Kind: KindElement, Type: t, Children: children}
}

// WithAlign returns a copy of an element with the given alignment.
func (n Node) WithAlign(a AlignType) Node {
	if n.Kind == KindElement {
		n.Align = a
	}
	return n
}

// NewDocument returns the document a fresh editor starts with: one empty
// paragraph.
func NewDocument() Document {
	return Document{NewElement(BlockParagraph, NewText(""))}
}

func (n Node) IsText() bool    { return n.Kind == KindText }
func (n Node) IsElement() bool { return n.Kind == KindElement }

// HasMark reports whether the leaf carries m. Elements carry no marks.
func (n Node) HasMark(m Mark) bool {
	if n.Kind != KindText {
		return false
	}
	switch m {
	case MarkBold:
		return n.Bold
	case MarkItalic:
		return n.Italic
	case MarkUnderline:
		return n.Underline
	}
	return false
}

func (n *Node) setMark(m Mark, on bool) {
	switch m {
	case MarkBold:
		n.Bold = on
	case MarkItalic:
		n.Italic = on
	case MarkUnderline:
		n.Underline = on
	}
}

func (n Node) sameMarks(o Node) bool {
	return n.Bold == o.Bold && n.Italic == o.Italic && n.Underline == o.Underline
}

// EffectiveAlign is the element alignment with the left default applied.
func (n Node) EffectiveAlign() AlignType {
	if n.Align == "" {
		return AlignLeft
	}
	return n.Align
}

func (n Node) runeLen() int {
	return utf8.RuneCountInString(n.Text)
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	if n.Children != nil {
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.Clone()
		}
		n.Children = children
	}
	return n
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, n := range d {
		out[i] = n.Clone()
	}
	return out
}

// Walk visits every node depth-first in document order. Returning false
// from fn skips the node's children.
func Walk(doc Document, fn func(path []int, n Node) bool) {
	walkNodes(doc, nil, fn)
}

func walkNodes(nodes []Node, prefix []int, fn func(path []int, n Node) bool) {
	for i, n := range nodes {
		path := append(append(make([]int, 0, len(prefix)+1), prefix...), i)
		if !fn(path, n) {
			continue
		}
		if n.Kind == KindElement {
			walkNodes(n.Children, path, fn)
		}
	}
}

// Map rebuilds the document bottom-up, replacing every node with fn's
// result. Children are mapped before their parent sees them.
func Map(doc Document, fn func(n Node) Node) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for i, n := range doc {
		out[i] = mapNode(n, fn)
	}
	return out
}

func mapNode(n Node, fn func(Node) Node) Node {
	if n.Kind == KindElement {
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = mapNode(c, fn)
		}
		n.Children = children
	}
	return fn(n)
}

// nodeAt returns a pointer into the document for in-place edits.
func (d Document) nodeAt(path []int) *Node {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(d) {
		return nil
	}
	n := &d[path[0]]
	for _, i := range path[1:] {
		if n.Kind != KindElement || i < 0 || i >= len(n.Children) {
			return nil
		}
		n = &n.Children[i]
	}
	return n
}
