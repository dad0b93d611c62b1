package dompa

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Structured dump shapes, one per node kind, told apart by Type.  Keys and
// field order are shared by the JSON and YAML encodings.
type (
	textView struct {
		Type  string `json:"type" yaml:"type"`
		Value string `json:"value" yaml:"value"`
	}
	elementView struct {
		Type       string         `json:"type" yaml:"type"`
		Name       string         `json:"name" yaml:"name"`
		Attributes map[string]any `json:"attributes" yaml:"attributes"`
		Children   []any          `json:"children" yaml:"children"`
	}
	voidView struct {
		Type       string         `json:"type" yaml:"type"`
		Name       string         `json:"name" yaml:"name"`
		Attributes map[string]any `json:"attributes" yaml:"attributes"`
	}
	fragmentView struct {
		Type     string `json:"type" yaml:"type"`
		Children []any  `json:"children" yaml:"children"`
	}
	commentView struct {
		Type    string `json:"type" yaml:"type"`
		Comment string `json:"comment" yaml:"comment"`
	}
	doctypeView struct {
		Type    string `json:"type" yaml:"type"`
		Doctype string `json:"doctype" yaml:"doctype"`
	}
)

// Values of the type key.
const (
	textType     = "textNode"
	elementType  = "node"
	voidType     = "voidNode"
	fragmentType = "fragmentNode"
	commentType  = "commentNode"
	doctypeType  = "doctypeNode"
)

// views maps nodes to their dump shapes.  Document nodes are replaced by
// their children.
func views(nodes []*Node) []any {
	out := make([]any, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if node.kind == DocumentNode {
			out = append(out, views(node.children)...)
			continue
		}
		out = append(out, node.view())
	}
	return out
}

func (node *Node) view() any {
	switch node.kind {
	case TextNode:
		return textView{Type: textType, Value: node.text}
	case CommentNode:
		return commentView{Type: commentType, Comment: node.text}
	case DoctypeNode:
		return doctypeView{Type: doctypeType, Doctype: node.text}
	case FragmentNode:
		return fragmentView{Type: fragmentType, Children: views(node.children)}
	case ElementNode:
		if node.IsVoid() {
			return voidView{Type: voidType, Name: node.name, Attributes: node.attrs.Map()}
		}
		return elementView{Type: elementType, Name: node.name, Attributes: node.attrs.Map(), Children: views(node.children)}
	default:
		return views(node.children)
	}
}

// ToJSON dumps nodes as a JSON array.
func ToJSON(nodes ...*Node) ([]byte, error) {
	return json.Marshal(views(nodes))
}

// ToYAML dumps nodes as a YAML sequence.
func ToYAML(nodes ...*Node) ([]byte, error) {
	return yaml.Marshal(views(nodes))
}

// MarshalJSON implements json.Marshaler with the ToJSON shape of a single
// node.
func (node *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(node.view())
}

// MarshalYAML implements yaml.Marshaler.
func (node *Node) MarshalYAML() (any, error) {
	return node.view(), nil
}
