package dompa

import (
	"strings"

	"golang.org/x/net/html"
)

// Represents an HTML tag to match elements against.
type Tag struct {
	Name  string            // Tag name
	Attrs map[string]string // Tag attributes; "" also matches a bool attribute
}

// Match an HTML element with a Tag.  Only applicable to ElementNode; returns
// false for any other NodeKind.
//
// Checks whether the element has the same name as the tag and whether the
// element has at least every attribute that the tag has.
func (node *Node) MatchTag(tag Tag) bool {
	if node.kind != ElementNode || node.name != lowerString(tag.Name) {
		return false
	}

	for key, tagVal := range tag.Attrs {
		attr, ok := node.attrs.Get(key)
		if !ok {
			return false
		}
		if attr.Bool && tagVal != "" || !attr.Bool && attr.Val != tagVal {
			return false
		}
	}

	return true
}

// Find returns every node in the given trees for which pred returns true, in
// document order.  The returned nodes are live.
func Find(nodes []*Node, pred func(*Node) bool) []*Node {
	matches := make([]*Node, 0, 16)

	stk := make(stack[*Node], 0, 16)
	for i := len(nodes) - 1; i >= 0; i-- {
		stk.Push(nodes[i])
	}

	for node, ok := stk.Pop(); ok; node, ok = stk.Pop() {
		if pred(node) {
			matches = append(matches, node)
		}

		// reverse iteration so that first child is pushed last
		for i := len(node.children) - 1; i >= 0; i-- {
			stk.Push(node.children[i])
		}
	}

	return matches
}

// find walks node and its descendants in document order collecting matches
// of pred; only the first unless all is set.  With prune set it does not
// descend into matches.
func (node *Node) find(pred func(*Node) bool, all, prune bool) []*Node {
	matches := make([]*Node, 0, 16)

	stk := make(stack[*Node], 0, 16)
	stk.Push(node)

	for node, ok := stk.Pop(); ok; node, ok = stk.Pop() {
		if pred(node) {
			matches = append(matches, node)
			if !all {
				break
			}
			if prune {
				continue
			}
		}

		// reverse iteration so that first child is pushed last
		for i := len(node.children) - 1; i >= 0; i-- {
			stk.Push(node.children[i])
		}
	}

	return matches
}

// Find the first element, node itself included, named tagName.  Returns nil
// if there is none.
func (node *Node) Find(tagName string) *Node {
	tagName = lowerString(tagName)
	matches := node.find(func(n *Node) bool {
		return n.kind == ElementNode && n.name == tagName
	}, false, false)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Find the first element, node itself included, that matches tag.  Returns
// nil if there is none.
func (node *Node) FindTag(tag Tag) *Node {
	matches := node.find(node.matcher(tag), false, false)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Find all elements named tagName.
//
// The prune flag determines whether to prune the search on matches, thus
// returning a flat slice of nodes where no result is the descendant of any
// other result.
func (node *Node) FindAll(tagName string, prune bool) []*Node {
	tagName = lowerString(tagName)
	return node.find(func(n *Node) bool {
		return n.kind == ElementNode && n.name == tagName
	}, true, prune)
}

// Find all elements that match tag.  Pass prune == true to stop descending
// into matches.
func (node *Node) FindTagAll(tag Tag, prune bool) []*Node {
	return node.find(node.matcher(tag), true, prune)
}

func (*Node) matcher(tag Tag) func(*Node) bool {
	return func(n *Node) bool { return n.MatchTag(tag) }
}

// TextContent returns the concatenated text of node and its descendants with
// character references decoded.  Content of raw-text elements such as
// <script> is returned as-is; <title> and <textarea> are decoded.
func (node *Node) TextContent() string {
	var b strings.Builder
	node.appendText(&b, false)
	return b.String()
}

func (node *Node) appendText(b *strings.Builder, raw bool) {
	switch node.kind {
	case TextNode:
		if raw {
			b.WriteString(node.text)
		} else {
			b.WriteString(html.UnescapeString(node.text))
		}
	case ElementNode, DocumentNode, FragmentNode:
		raw = raw || node.kind == ElementNode && isRawText(node.atom) && !isRCDATA(node.atom)
		for _, child := range node.children {
			child.appendText(b, raw)
		}
	}
}
