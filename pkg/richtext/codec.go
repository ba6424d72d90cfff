package richtext

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotBlockArray is reported when the persisted content is valid JSON
// but not an array of nodes.
var ErrNotBlockArray = errors.New("richtext: content is not a block array")

// DecodeError describes persisted content that could not be read as a
// structured document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("richtext: decode content: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type textJSON struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
}

type elementJSON struct {
	Type     BlockType `json:"type"`
	Align    AlignType `json:"align,omitempty"`
	Children []Node    `json:"children"`
}

// MarshalJSON writes the persisted shape of a node. Marks are written only
// when set.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Kind == KindElement {
		children := n.Children
		if children == nil {
			children = []Node{}
		}
		t := n.Type
		if t == "" {
			t = BlockParagraph
		}
		return marshalRaw(elementJSON{Type: t, Align: n.Align, Children: children})
	}
	return marshalRaw(textJSON{Text: n.Text, Bold: n.Bold, Italic: n.Italic, Underline: n.Underline})
}

// marshalRaw encodes without HTML escaping so persisted text keeps < and >
// as written.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads any JSON value and normalizes it into a node.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = NormalizeNode(raw)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return marshalRaw([]Node(d))
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	arr, ok := raw.([]any)
	if !ok {
		return ErrNotBlockArray
	}
	*d = Normalize(arr)
	return nil
}

// Encode serializes a document into its persisted string form.
func Encode(doc Document) (string, error) {
	out, err := marshalRaw(doc)
	if err != nil {
		return "", fmt.Errorf("richtext: encode document: %w", err)
	}
	return string(out), nil
}

// Decode parses persisted content and normalizes it. Content that is not
// JSON, or JSON that is not an array, yields a *DecodeError.
func Decode(content string) (Document, error) {
	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, &DecodeError{Err: ErrNotBlockArray}
	}
	return Normalize(arr), nil
}

// DecodeOrFallback never fails: unreadable content is returned as a single
// paragraph holding the raw string verbatim, with ok set to false.
func DecodeOrFallback(content string) (doc Document, ok bool) {
	doc, err := Decode(content)
	if err != nil {
		return Fallback(content), false
	}
	return doc, true
}

// Fallback wraps legacy plain text in a single paragraph.
func Fallback(content string) Document {
	return Document{NewElement(BlockParagraph, NewText(content))}
}
