package dompa

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Render writes nodes as HTML to w.  Text, comments and attribute values
// are written exactly as stored, with one exception: when a text node ends in
// a '<' that would start markup together with the text node after it, that
// '<' is written as &lt;.  Parsing never yields such neighbours from
// well-formed input.
func Render(w io.Writer, nodes ...*Node) error {
	r := renderer{w: w}
	r.renderNodes(nodes)
	return r.err
}

// HTML renders node and its descendants to a string.
func (node *Node) HTML() string {
	var buf bytes.Buffer
	// writes to a bytes.Buffer cannot fail
	_ = Render(&buf, node)
	return buf.String()
}

// renderer keeps the first write error and skips all writes after it.
type renderer struct {
	w   io.Writer
	err error
}

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) renderNode(node *Node) {
	if node == nil || r.err != nil {
		return
	}

	switch node.kind {
	case ElementNode:
		r.renderElement(node)
	case TextNode:
		r.write(node.text)
	case CommentNode:
		r.write("<!--")
		r.write(node.text)
		r.write("-->")
	case DoctypeNode:
		r.write("<!DOCTYPE")
		if node.text != "" {
			r.write(" ")
			r.write(node.text)
		}
		r.write(">")
	case DocumentNode, FragmentNode:
		r.renderChildren(node)
	default:
		r.err = fmt.Errorf("render: unknown node kind: %s", node.kind)
	}
}

func (r *renderer) renderChildren(node *Node) {
	r.renderNodes(node.children)
}

func (r *renderer) renderNodes(nodes []*Node) {
	for i, node := range nodes {
		if node != nil && node.kind == TextNode {
			if j := danglingLt(node.text, nodes[i+1:]); j >= 0 {
				r.write(node.text[:j])
				r.write("&lt;")
				r.write(node.text[j+1:])
				continue
			}
		}
		r.renderNode(node)
	}
}

// danglingLt returns the index of the last '<' in text if it is literal text
// on its own but starts markup once the text nodes in next follow it, or -1.
func danglingLt(text string, next []*Node) int {
	i := strings.LastIndexByte(text, '<')
	if i < 0 || len(text)-i >= len(doctypeStart) {
		return -1
	}

	tail := text[i:]
	joined := tail
	for _, node := range next {
		if node == nil {
			continue
		}
		if node.kind != TextNode || len(joined) >= len(doctypeStart) {
			break
		}
		joined += node.text
	}

	if joined == tail || markupAt([]byte(tail), 0) != textToken || markupAt([]byte(joined), 0) == textToken {
		return -1
	}
	return i
}

func (r *renderer) renderElement(node *Node) {
	var open strings.Builder
	open.WriteByte('<')
	open.WriteString(node.name)
	for _, attr := range node.attrs {
		open.WriteByte(' ')
		writeAttr(&open, attr)
	}
	open.WriteByte('>')
	r.write(open.String())

	if node.IsVoid() {
		return
	}

	r.renderChildren(node)
	r.write("</")
	r.write(node.name)
	r.write(">")
}

// writeAttr writes key="val", or the bare key for bool attributes.  Values
// are not escaped; a value holding a double quote is single-quoted instead
// so that it parses back to the same value.
func writeAttr(b *strings.Builder, attr Attr) {
	b.WriteString(attr.Key)
	if attr.Bool {
		return
	}

	b.WriteByte('=')
	switch {
	case !strings.ContainsRune(attr.Val, '"'):
		b.WriteByte('"')
		b.WriteString(attr.Val)
		b.WriteByte('"')
	case !strings.ContainsRune(attr.Val, '\''):
		b.WriteByte('\'')
		b.WriteString(attr.Val)
		b.WriteByte('\'')
	default:
		// no quote style fits; this is the one place a value is escaped
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(attr.Val, `"`, "&quot;"))
		b.WriteByte('"')
	}
}
