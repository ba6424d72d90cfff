package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(offset int, path ...int) Point {
	return Point{Path: path, Offset: offset}
}

func TestSession_NewSession(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, NewDocument(), s.Doc)
	assert.Nil(t, s.Selection)

	src := Document{NewElement(BlockParagraph, NewText("a"))}
	s = NewSession(src)
	s.Doc[0].Children[0].Text = "b"
	assert.Equal(t, "a", src[0].Children[0].Text)
}

func TestSession_Select(t *testing.T) {
	s := NewSession(Document{
		NewElement(BlockParagraph, NewText("héllo")),
	})

	require.NoError(t, s.Select(Selection{Anchor: pt(0, 0, 0), Focus: pt(5, 0, 0)}))

	tests := []struct {
		name string
		sel  Selection
	}{
		{name: "missing path", sel: Caret(pt(0, 3, 0))},
		{name: "element path", sel: Caret(pt(0, 0))},
		{name: "empty path", sel: Caret(pt(0))},
		{name: "offset past end", sel: Caret(pt(6, 0, 0))},
		{name: "negative offset", sel: Caret(pt(-1, 0, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Select(tt.sel), ErrInvalidSelection)
		})
	}
}

func TestSession_ToggleMark_PartialLeaf(t *testing.T) {
	original := Document{NewElement(BlockParagraph, NewText("hello"))}
	s := NewSession(original)
	require.NoError(t, s.Select(Selection{Anchor: pt(1, 0, 0), Focus: pt(3, 0, 0)}))
	assert.False(t, s.IsMarkActive(MarkBold))

	s.ToggleMark(MarkBold)

	assert.Equal(t, Document{NewElement(BlockParagraph,
		NewText("h"),
		NewText("el", MarkBold),
		NewText("lo"),
	)}, s.Doc)
	assert.Equal(t, &Selection{Anchor: pt(0, 0, 1), Focus: pt(2, 0, 1)}, s.Selection)
	assert.True(t, s.IsMarkActive(MarkBold))

	s.ToggleMark(MarkBold)

	assert.Equal(t, original, s.Doc)
	assert.Equal(t, &Selection{Anchor: pt(1, 0, 0), Focus: pt(3, 0, 0)}, s.Selection)
}

func TestSession_ToggleMark_Involution(t *testing.T) {
	tests := []struct {
		name  string
		doc   Document
		marks []Mark
	}{
		{
			name:  "two leaves with different marks",
			doc:   Document{NewElement(BlockParagraph, NewText("Hello "), NewText("world", MarkItalic))},
			marks: []Mark{MarkBold, MarkUnderline},
		},
		{
			name: "across blocks",
			doc: Document{
				NewElement(BlockHeadingOne, NewText("Title", MarkUnderline)),
				NewElement(BlockParagraph, NewText("body")),
			},
			marks: []Mark{MarkBold, MarkItalic},
		},
		{
			name:  "uniformly marked",
			doc:   Document{NewElement(BlockParagraph, NewText("all bold", MarkBold))},
			marks: []Mark{MarkBold, MarkItalic, MarkUnderline},
		},
	}

	for _, tt := range tests {
		for _, m := range tt.marks {
			t.Run(tt.name+"/"+string(m), func(t *testing.T) {
				s := NewSession(tt.doc)
				require.NoError(t, s.SelectAll())

				before := s.Snapshot()
				s.ToggleMark(m)
				assert.NotEqual(t, before, s.Doc)
				s.ToggleMark(m)
				assert.Equal(t, before, s.Doc)
			})
		}
	}
}

func TestSession_ToggleMark_InvolutionOnDecodedContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		sel     func(s *Session) error
		want    Document
	}{
		{
			name:    "split plain leaves",
			content: `[{"type":"paragraph","children":[{"text":"a"},{"text":"b"}]}]`,
			sel:     (*Session).SelectAll,
			want:    Document{NewElement(BlockParagraph, NewText("ab"))},
		},
		{
			name:    "part of a split run",
			content: `[{"type":"paragraph","children":[{"text":"x"},{"text":"y"},{"text":"zz"}]}]`,
			sel: func(s *Session) error {
				return s.Select(Selection{Anchor: pt(2, 0, 0), Focus: pt(4, 0, 0)})
			},
			want: Document{NewElement(BlockParagraph, NewText("xyzz"))},
		},
		{
			name:    "empty leaf beside marked text",
			content: `[{"type":"paragraph","children":[{"text":"a"},{"text":"","bold":true},{"text":"c","italic":true}]}]`,
			sel:     (*Session).SelectAll,
			want:    Document{NewElement(BlockParagraph, NewText("a"), NewText("c", MarkItalic))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(tt.content)
			require.NoError(t, err)

			s := NewSession(doc)
			assert.Equal(t, tt.want, s.Doc)
			require.NoError(t, tt.sel(s))

			before := s.Snapshot()
			s.ToggleMark(MarkBold)
			assert.NotEqual(t, before, s.Doc)
			s.ToggleMark(MarkBold)
			assert.Equal(t, before, s.Doc)
		})
	}
}

func TestSession_ToggleMark_LeavesOtherBlocksAlone(t *testing.T) {
	doc, err := Decode(`[{"type":"paragraph","children":[{"text":"one"}]},{"type":"paragraph","children":[{"text":"t"},{"text":"wo","underline":true}]}]`)
	require.NoError(t, err)
	s := NewSession(doc)
	require.NoError(t, s.Select(Selection{Anchor: pt(0, 0, 0), Focus: pt(3, 0, 0)}))

	s.ToggleMark(MarkItalic)

	assert.Equal(t, Document{
		NewElement(BlockParagraph, NewText("one", MarkItalic)),
		NewElement(BlockParagraph, NewText("t"), NewText("wo", MarkUnderline)),
	}, s.Doc)
}

func TestSession_ToggleMark_MixedStateAddsEverywhere(t *testing.T) {
	s := NewSession(Document{NewElement(BlockParagraph, NewText("a", MarkBold), NewText("b"))})
	require.NoError(t, s.SelectAll())
	assert.False(t, s.IsMarkActive(MarkBold))

	s.ToggleMark(MarkBold)

	assert.Equal(t, Document{NewElement(BlockParagraph, NewText("ab", MarkBold))}, s.Doc)
	assert.Equal(t, &Selection{Anchor: pt(0, 0, 0), Focus: pt(2, 0, 0)}, s.Selection)
	assert.True(t, s.IsMarkActive(MarkBold))
}

func TestSession_ToggleMark_AcrossBlocks(t *testing.T) {
	s := NewSession(Document{
		NewElement(BlockParagraph, NewText("abc")),
		NewElement(BlockParagraph, NewText("def")),
	})
	require.NoError(t, s.Select(Selection{Anchor: pt(1, 0, 0), Focus: pt(2, 1, 0)}))

	s.ToggleMark(MarkItalic)

	assert.Equal(t, Document{
		NewElement(BlockParagraph, NewText("a"), NewText("bc", MarkItalic)),
		NewElement(BlockParagraph, NewText("de", MarkItalic), NewText("f")),
	}, s.Doc)
	assert.Equal(t, &Selection{Anchor: pt(0, 0, 1), Focus: pt(2, 1, 0)}, s.Selection)
}

func TestSession_ToggleMark_MixedChildren(t *testing.T) {
	s := NewSession(Document{
		NewElement(BlockBulletedList,
			NewText("ab"),
			NewElement(BlockListItem, NewText("x")),
			NewText("cd"),
		),
	})
	require.NoError(t, s.Select(Selection{Anchor: pt(1, 0, 0), Focus: pt(1, 0, 2)}))

	s.ToggleMark(MarkBold)

	assert.Equal(t, Document{
		NewElement(BlockBulletedList,
			NewText("a"),
			NewText("b", MarkBold),
			NewElement(BlockListItem, NewText("x", MarkBold)),
			NewText("c", MarkBold),
			NewText("d"),
		),
	}, s.Doc)
	assert.Equal(t, &Selection{Anchor: pt(0, 0, 1), Focus: pt(1, 0, 3)}, s.Selection)
}

func TestSession_ToggleMark_BackwardSelection(t *testing.T) {
	s := NewSession(Document{NewElement(BlockParagraph, NewText("hello"))})
	require.NoError(t, s.Select(Selection{Anchor: pt(3, 0, 0), Focus: pt(1, 0, 0)}))

	s.ToggleMark(MarkUnderline)

	assert.Equal(t, &Selection{Anchor: pt(2, 0, 1), Focus: pt(0, 0, 1)}, s.Selection)
	assert.True(t, s.Doc[0].Children[1].Underline)
}

func TestSession_NoOpSelections(t *testing.T) {
	doc := Document{NewElement(BlockParagraph, NewText("hello"))}

	t.Run("no selection", func(t *testing.T) {
		s := NewSession(doc)
		s.ToggleMark(MarkBold)
		s.ToggleBlock(BlockHeadingOne)
		s.ToggleAlign(AlignCenter)
		assert.Equal(t, doc, s.Doc)
		assert.False(t, s.IsMarkActive(MarkBold))
		assert.False(t, s.IsBlockActive(BlockParagraph))
		assert.False(t, s.IsAlignActive(AlignLeft))
	})

	t.Run("collapsed selection leaves marks alone", func(t *testing.T) {
		s := NewSession(doc)
		require.NoError(t, s.Select(Caret(pt(2, 0, 0))))
		s.ToggleMark(MarkBold)
		assert.Equal(t, doc, s.Doc)
		assert.False(t, s.IsMarkActive(MarkBold))
	})

	t.Run("stale selection", func(t *testing.T) {
		s := NewSession(doc)
		s.Selection = &Selection{Anchor: pt(0, 4, 2), Focus: pt(0, 4, 2)}
		s.ToggleMark(MarkBold)
		s.ToggleBlock(BlockHeadingOne)
		assert.Equal(t, doc, s.Doc)
	})

	t.Run("invalid mark and align", func(t *testing.T) {
		s := NewSession(doc)
		require.NoError(t, s.SelectAll())
		s.ToggleMark(Mark("strike"))
		s.ToggleAlign(AlignType("justify"))
		assert.Equal(t, doc, s.Doc)
	})

	t.Run("deselect", func(t *testing.T) {
		s := NewSession(doc)
		require.NoError(t, s.SelectAll())
		s.Deselect()
		s.ToggleMark(MarkBold)
		assert.Equal(t, doc, s.Doc)
	})
}

func TestSession_ToggleBlock(t *testing.T) {
	s := NewSession(Document{
		NewElement(BlockParagraph, NewText("a")),
		NewElement(BlockParagraph, NewText("b")),
	})
	require.NoError(t, s.Select(Caret(pt(0, 1, 0))))

	s.ToggleBlock(BlockHeadingOne)
	assert.Equal(t, BlockParagraph, s.Doc[0].Type)
	assert.Equal(t, BlockHeadingOne, s.Doc[1].Type)
	assert.True(t, s.IsBlockActive(BlockHeadingOne))

	s.ToggleBlock(BlockHeadingOne)
	assert.Equal(t, BlockParagraph, s.Doc[1].Type)
	assert.False(t, s.IsBlockActive(BlockHeadingOne))
}

func TestSession_ToggleBlock_LandingState(t *testing.T) {
	types := []BlockType{
		BlockHeadingOne, BlockHeadingTwo, BlockHeadingThree,
		BlockNumberedList, BlockBulletedList, BlockListItem, BlockType("blockquote"),
	}

	for _, bt := range types {
		t.Run(string(bt), func(t *testing.T) {
			s := NewSession(Document{
				NewElement(BlockParagraph, NewText("a")),
				NewElement(BlockParagraph, NewText("b")),
			})
			require.NoError(t, s.SelectAll())

			s.ToggleBlock(bt)
			assert.True(t, s.IsBlockActive(bt))
			for _, n := range s.Doc {
				assert.Equal(t, bt, n.Type)
			}

			s.ToggleBlock(bt)
			for _, n := range s.Doc {
				assert.Equal(t, BlockParagraph, n.Type)
			}
		})
	}
}

func TestSession_ToggleBlock_NestedAncestors(t *testing.T) {
	s := NewSession(Document{
		NewElement(BlockBulletedList, NewElement(BlockListItem, NewText("x"))),
	})
	require.NoError(t, s.Select(Caret(pt(0, 0, 0, 0))))

	assert.True(t, s.IsBlockActive(BlockBulletedList))
	assert.True(t, s.IsBlockActive(BlockListItem))

	s.ToggleBlock(BlockBulletedList)
	assert.Equal(t, BlockParagraph, s.Doc[0].Type)
	assert.Equal(t, BlockParagraph, s.Doc[0].Children[0].Type)
}

func TestSession_ToggleAlign(t *testing.T) {
	s := NewSession(Document{
		NewElement(BlockParagraph, NewText("a")),
		NewElement(BlockParagraph, NewText("b")),
	})
	require.NoError(t, s.SelectAll())

	assert.True(t, s.IsAlignActive(AlignLeft))
	assert.False(t, s.IsAlignActive(AlignCenter))

	s.ToggleAlign(AlignCenter)
	assert.True(t, s.IsAlignActive(AlignCenter))
	for _, n := range s.Doc {
		assert.Equal(t, AlignCenter, n.Align)
	}

	s.ToggleAlign(AlignCenter)
	for _, n := range s.Doc {
		assert.Equal(t, AlignLeft, n.EffectiveAlign())
	}
}

func TestSession_SnapshotIsIndependent(t *testing.T) {
	s := NewSession(Document{NewElement(BlockParagraph, NewText("hello"))})
	snap := s.Snapshot()

	require.NoError(t, s.SelectAll())
	s.ToggleMark(MarkBold)

	assert.False(t, snap[0].Children[0].Bold)
	assert.True(t, s.Doc[0].Children[0].Bold)
}

func TestSession_SelectAll_EmptyDocument(t *testing.T) {
	s := &Session{Doc: Document{}}
	assert.ErrorIs(t, s.SelectAll(), ErrInvalidSelection)
}
