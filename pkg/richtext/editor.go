package richtext

// Session is an editing session over one document. It owns its document
// and selection and is not safe for concurrent use; callers that share a
// session across goroutines must serialize access.
//
// Every editing operation is total: an absent, collapsed or stale
// selection makes the operation a no-op instead of an error.
type Session struct {
	Doc       Document
	Selection *Selection
}

// NewSession starts a session on a private copy of doc. An empty document
// is replaced with a single empty paragraph. Adjacent text leaves with
// equal marks are joined up front, so a mark toggled twice over the same
// selection gives back the session's starting document.
func NewSession(doc Document) *Session {
	if len(doc) == 0 {
		return &Session{Doc: NewDocument()}
	}
	return &Session{Doc: Document(compactLeaves(Normalize(doc)))}
}

// compactLeaves joins adjacent text leaves with equal marks and drops empty
// leaves that sit next to other text, at every level of the tree.
func compactLeaves(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nodes
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsElement() {
			n.Children = compactLeaves(n.Children)
			out = append(out, n)
			continue
		}
		if last := len(out) - 1; last >= 0 && out[last].IsText() {
			switch {
			case out[last].sameMarks(n):
				out[last].Text += n.Text
				continue
			case n.Text == "":
				continue
			case out[last].Text == "":
				out[last] = n
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// Select replaces the selection after checking both points address text.
func (s *Session) Select(sel Selection) error {
	if err := s.Doc.checkPoint(sel.Anchor); err != nil {
		return err
	}
	if err := s.Doc.checkPoint(sel.Focus); err != nil {
		return err
	}
	sel.Anchor.Path = clonePath(sel.Anchor.Path)
	sel.Focus.Path = clonePath(sel.Focus.Path)
	s.Selection = &sel
	return nil
}

// SelectAll selects from the start of the first text leaf to the end of
// the last one.
func (s *Session) SelectAll() error {
	leaves := s.Doc.leaves()
	if len(leaves) == 0 {
		return ErrInvalidSelection
	}
	last := leaves[len(leaves)-1]
	return s.Select(Selection{
		Anchor: Point{Path: leaves[0].path},
		Focus:  Point{Path: last.path, Offset: last.node.runeLen()},
	})
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.Selection = nil
}

// Snapshot returns a deep copy of the current document.
func (s *Session) Snapshot() Document {
	return s.Doc.Clone()
}

func (s *Session) bounds() (start, end Point, ok bool) {
	if s.Selection == nil {
		return Point{}, Point{}, false
	}
	if s.Doc.checkPoint(s.Selection.Anchor) != nil || s.Doc.checkPoint(s.Selection.Focus) != nil {
		return Point{}, Point{}, false
	}
	start, end = s.Selection.Range()
	return start, end, true
}

type leafSpan struct {
	path     []int
	from, to int
	node     Node
}

// markSpans lists the text leaves the selection covers, with the covered
// rune range of each. Leaves only touched at an edge are left out.
func (s *Session) markSpans() []leafSpan {
	start, end, ok := s.bounds()
	if !ok || comparePoints(start, end) == 0 {
		return nil
	}

	var spans []leafSpan
	for _, lf := range s.Doc.leaves() {
		if comparePaths(lf.path, start.Path) < 0 || comparePaths(lf.path, end.Path) > 0 {
			continue
		}
		n := lf.node.runeLen()
		from, to := 0, n
		if comparePaths(lf.path, start.Path) == 0 {
			from = start.Offset
		}
		if comparePaths(lf.path, end.Path) == 0 {
			to = end.Offset
		}
		if from < to || n == 0 {
			spans = append(spans, leafSpan{path: lf.path, from: from, to: to, node: lf.node})
		}
	}
	return spans
}

// blockPaths lists every element that is an ancestor of a text leaf lying
// within the selection, in document order.
func (s *Session) blockPaths() [][]int {
	start, end, ok := s.bounds()
	if !ok {
		return nil
	}

	seen := make(map[string]struct{})
	var out [][]int
	for _, lf := range s.Doc.leaves() {
		if comparePaths(lf.path, start.Path) < 0 || comparePaths(lf.path, end.Path) > 0 {
			continue
		}
		for depth := 1; depth < len(lf.path); depth++ {
			prefix := lf.path[:depth]
			key := pathKey(prefix)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, clonePath(prefix))
		}
	}
	return out
}

// IsMarkActive reports whether every text leaf in the selection carries m.
// It is false when the selection covers no text.
func (s *Session) IsMarkActive(m Mark) bool {
	spans := s.markSpans()
	if len(spans) == 0 {
		return false
	}
	for _, sp := range spans {
		if !sp.node.HasMark(m) {
			return false
		}
	}
	return true
}

// ToggleMark removes m from the selected text when all of it carries m and
// adds it otherwise. Leaves are split at the selection edges so that only
// the selected runes change, then the pieces are merged with equal
// neighbours. The rest of the parent is already compact.
func (s *Session) ToggleMark(m Mark) {
	if !m.Valid() {
		return
	}
	spans := s.markSpans()
	if len(spans) == 0 {
		return
	}
	on := !s.IsMarkActive(m)

	start, end, _ := s.bounds()
	backward := s.Selection.IsBackward()
	startPos := s.Doc.toTextPos(start)
	endPos := s.Doc.toTextPos(end)

	parents := make(map[string][]int)
	var order []string
	for _, sp := range spans {
		pos := s.Doc.toTextPos(Point{Path: sp.path})
		key := pathKey(pos.parent)
		if _, ok := parents[key]; !ok {
			parents[key] = pos.parent
			order = append(order, key)
		}
	}

	// Reverse document order keeps the paths of spans not yet visited valid.
	for i := len(spans) - 1; i >= 0; i-- {
		s.splitAndMark(spans[i], m, on)
	}
	for _, key := range order {
		if raw, ok := s.Doc.rawPath(parents[key]); ok {
			s.mergeLeaves(raw)
		}
	}

	newStart, okStart := s.Doc.resolve(startPos, true)
	newEnd, okEnd := s.Doc.resolve(endPos, false)
	if !okStart || !okEnd {
		s.Selection = nil
		return
	}
	if backward {
		s.Selection = &Selection{Anchor: newEnd, Focus: newStart}
	} else {
		s.Selection = &Selection{Anchor: newStart, Focus: newEnd}
	}
}

func (s *Session) childrenOf(parent []int) *[]Node {
	if len(parent) == 0 {
		return (*[]Node)(&s.Doc)
	}
	n := s.Doc.nodeAt(parent)
	if n == nil || !n.IsElement() {
		return nil
	}
	return &n.Children
}

func (s *Session) splitAndMark(sp leafSpan, m Mark, on bool) {
	parent := sp.path[:len(sp.path)-1]
	idx := sp.path[len(sp.path)-1]
	children := s.childrenOf(parent)
	if children == nil {
		return
	}

	leaf := (*children)[idx]
	runes := []rune(leaf.Text)
	pieces := make([]Node, 0, 3)
	if sp.from > 0 {
		before := leaf
		before.Text = string(runes[:sp.from])
		pieces = append(pieces, before)
	}
	mid := leaf
	mid.Text = string(runes[sp.from:sp.to])
	mid.setMark(m, on)
	pieces = append(pieces, mid)
	if sp.to < len(runes) {
		after := leaf
		after.Text = string(runes[sp.to:])
		pieces = append(pieces, after)
	}

	out := make([]Node, 0, len(*children)+len(pieces)-1)
	out = append(out, (*children)[:idx]...)
	out = append(out, pieces...)
	out = append(out, (*children)[idx+1:]...)
	*children = out
}

func (s *Session) mergeLeaves(parent []int) {
	children := s.childrenOf(parent)
	if children == nil {
		return
	}
	out := make([]Node, 0, len(*children))
	for _, n := range *children {
		if last := len(out) - 1; last >= 0 && n.IsText() && out[last].IsText() && out[last].sameMarks(n) {
			out[last].Text += n.Text
			continue
		}
		out = append(out, n)
	}
	*children = out
}

// IsBlockActive reports whether any block around the selection has type t.
func (s *Session) IsBlockActive(t BlockType) bool {
	for _, p := range s.blockPaths() {
		if s.Doc.nodeAt(p).Type == t {
			return true
		}
	}
	return false
}

// ToggleBlock sets every block around the selection to t, or back to a
// paragraph when t is already active.
func (s *Session) ToggleBlock(t BlockType) {
	if t == "" {
		t = BlockParagraph
	}
	paths := s.blockPaths()
	if len(paths) == 0 {
		return
	}
	target := t
	if s.IsBlockActive(t) {
		target = BlockParagraph
	}
	for _, p := range paths {
		s.Doc.nodeAt(p).Type = target
	}
}

// IsAlignActive reports whether any block around the selection reads as
// aligned to a. Blocks without an alignment read as left.
func (s *Session) IsAlignActive(a AlignType) bool {
	if !a.Valid() {
		return false
	}
	for _, p := range s.blockPaths() {
		if s.Doc.nodeAt(p).EffectiveAlign() == a {
			return true
		}
	}
	return false
}

// ToggleAlign aligns every block around the selection to a, or back to
// left when a is already active.
func (s *Session) ToggleAlign(a AlignType) {
	if !a.Valid() {
		return
	}
	paths := s.blockPaths()
	if len(paths) == 0 {
		return
	}
	target := a
	if s.IsAlignActive(a) {
		target = AlignLeft
	}
	for _, p := range paths {
		s.Doc.nodeAt(p).Align = target
	}
}
