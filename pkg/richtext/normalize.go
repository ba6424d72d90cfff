package richtext

// Normalize turns an arbitrary decoded tree into a Document. It accepts the
// generic values produced by encoding/json ([]any, map[string]any, ...) as
// well as already typed Documents and Nodes, so it can be applied to its
// own output. It never fails: anything unrecognisable becomes an empty
// text leaf.
func Normalize(raw any) Document {
	switch v := raw.(type) {
	case nil:
		return Document{}
	case Document:
		return normalizeSlice(v)
	case []Node:
		return normalizeSlice(v)
	case []any:
		out := make(Document, len(v))
		for i, item := range v {
			out[i] = NormalizeNode(item)
		}
		return out
	case []map[string]any:
		out := make(Document, len(v))
		for i, item := range v {
			out[i] = NormalizeNode(item)
		}
		return out
	default:
		return Document{NormalizeNode(v)}
	}
}

// NormalizeNode normalizes a single node:
//   - a value with a string "text" field becomes a text leaf, keeping only
//     marks that are exactly true;
//   - a value with a "children" array becomes an element, typed paragraph
//     when the type is missing, with alignment kept only when valid;
//   - anything else becomes an empty text leaf.
func NormalizeNode(raw any) Node {
	switch v := raw.(type) {
	case Node:
		return normalizeTyped(v)
	case *Node:
		if v == nil {
			return NewText("")
		}
		return normalizeTyped(*v)
	case map[string]any:
		return normalizeMap(v)
	default:
		return NewText("")
	}
}

func normalizeSlice(nodes []Node) Document {
	out := make(Document, len(nodes))
	for i, n := range nodes {
		out[i] = normalizeTyped(n)
	}
	return out
}

func normalizeTyped(n Node) Node {
	switch n.Kind {
	case KindText:
		return Node{Kind: KindText, Text: n.Text, Bold: n.Bold, Italic: n.Italic, Underline: n.Underline}
	case KindElement:
		el := NewElement(n.Type)
		if n.Align.Valid() {
			el.Align = n.Align
		}
		el.Children = normalizeSlice(n.Children)
		return el
	default:
		return NewText("")
	}
}

func normalizeMap(m map[string]any) Node {
	if text, ok := m["text"].(string); ok {
		return Node{
			Kind:      KindText,
			Text:      text,
			Bold:      m["bold"] == true,
			Italic:    m["italic"] == true,
			Underline: m["underline"] == true,
		}
	}

	if children, ok := m["children"].([]any); ok {
		t, _ := m["type"].(string)
		el := NewElement(BlockType(t))
		if a, ok := m["align"].(string); ok && AlignType(a).Valid() {
			el.Align = AlignType(a)
		}
		el.Children = make([]Node, len(children))
		for i, c := range children {
			el.Children[i] = NormalizeNode(c)
		}
		return el
	}

	return NewText("")
}
