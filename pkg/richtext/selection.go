package richtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned by Session.Select for points that do not
// address a text leaf or fall outside its text.
var ErrInvalidSelection = errors.New("richtext: invalid selection")

// Point addresses a position inside a text leaf. Path indexes from the
// document root down to the leaf; Offset counts runes into its text.
type Point struct {
	Path   []int `json:"path"`
	Offset int   `json:"offset"`
}

// Selection is a range between two points. Anchor is where the selection
// started and may come after Focus.
type Selection struct {
	Anchor Point `json:"anchor"`
	Focus  Point `json:"focus"`
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

func (s Selection) IsCollapsed() bool {
	return comparePoints(s.Anchor, s.Focus) == 0
}

// Range returns the selection's points in document order.
func (s Selection) Range() (start, end Point) {
	if comparePoints(s.Anchor, s.Focus) > 0 {
		return s.Focus, s.Anchor
	}
	return s.Anchor, s.Focus
}

// IsBackward reports whether the anchor comes after the focus.
func (s Selection) IsBackward() bool {
	return comparePoints(s.Anchor, s.Focus) > 0
}

func comparePaths(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func comparePoints(a, b Point) int {
	if c := comparePaths(a.Path, b.Path); c != 0 {
		return c
	}
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

func pathKey(p []int) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

func clonePath(p []int) []int {
	return append([]int(nil), p...)
}

func (d Document) checkPoint(p Point) error {
	n := d.nodeAt(p.Path)
	if n == nil {
		return fmt.Errorf("%w: path %v does not exist", ErrInvalidSelection, p.Path)
	}
	if !n.IsText() {
		return fmt.Errorf("%w: path %v is not a text leaf", ErrInvalidSelection, p.Path)
	}
	if p.Offset < 0 || p.Offset > n.runeLen() {
		return fmt.Errorf("%w: offset %d outside text of length %d", ErrInvalidSelection, p.Offset, n.runeLen())
	}
	return nil
}

type leafRef struct {
	path []int
	node Node
}

func (d Document) leaves() []leafRef {
	var out []leafRef
	Walk(d, func(path []int, n Node) bool {
		if n.IsText() {
			out = append(out, leafRef{path: path, node: n})
		}
		return true
	})
	return out
}

// textPos is a position that survives splitting and merging of text
// leaves: the parent is addressed by element-only ordinals, and the offset
// is counted across the run of adjacent text leaves the point sits in.
type textPos struct {
	parent []int
	run    int
	offset int
}

func (d Document) siblings(parent []int) []Node {
	if len(parent) == 0 {
		return d
	}
	n := d.nodeAt(parent)
	if n == nil || !n.IsElement() {
		return nil
	}
	return n.Children
}

func (d Document) toTextPos(p Point) textPos {
	parent := p.Path[:len(p.Path)-1]
	idx := p.Path[len(p.Path)-1]

	ordinals := make([]int, len(parent))
	level := []Node(d)
	for depth, raw := range parent {
		ord := 0
		for i := 0; i < raw; i++ {
			if level[i].IsElement() {
				ord++
			}
		}
		ordinals[depth] = ord
		level = level[raw].Children
	}

	pos := textPos{parent: ordinals}
	for i := 0; i < idx; i++ {
		if level[i].IsElement() {
			pos.run++
			pos.offset = 0
			continue
		}
		pos.offset += level[i].runeLen()
	}
	pos.offset += p.Offset
	return pos
}

func (d Document) rawPath(ordinals []int) ([]int, bool) {
	raw := make([]int, 0, len(ordinals))
	level := []Node(d)
	for _, ord := range ordinals {
		found := -1
		seen := 0
		for i, n := range level {
			if !n.IsElement() {
				continue
			}
			if seen == ord {
				found = i
				break
			}
			seen++
		}
		if found < 0 {
			return nil, false
		}
		raw = append(raw, found)
		level = level[found].Children
	}
	return raw, true
}

// resolve maps a textPos back to a leaf point. Positions on a boundary
// between two leaves prefer the following leaf when forward is set and the
// preceding one otherwise.
func (d Document) resolve(pos textPos, forward bool) (Point, bool) {
	parent, ok := d.rawPath(pos.parent)
	if !ok {
		return Point{}, false
	}
	level := d.siblings(parent)

	type candidate struct{ idx, start, end int }
	var run []candidate
	current, cum := 0, 0
	for i, n := range level {
		if n.IsElement() {
			current++
			cum = 0
			continue
		}
		if current == pos.run {
			run = append(run, candidate{idx: i, start: cum, end: cum + n.runeLen()})
		}
		cum += n.runeLen()
	}
	if len(run) == 0 {
		return Point{}, false
	}

	point := func(c candidate) Point {
		return Point{Path: append(clonePath(parent), c.idx), Offset: pos.offset - c.start}
	}
	if forward {
		for _, c := range run {
			if c.start <= pos.offset && pos.offset < c.end {
				return point(c), true
			}
		}
		for i := len(run) - 1; i >= 0; i-- {
			if run[i].end == pos.offset {
				return point(run[i]), true
			}
		}
	} else {
		for _, c := range run {
			if c.start < pos.offset && pos.offset <= c.end {
				return point(c), true
			}
		}
		for _, c := range run {
			if c.start == pos.offset {
				return point(c), true
			}
		}
	}
	return Point{}, false
}
