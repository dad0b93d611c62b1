// Package dompa parses HTML into a tree of nodes and renders the tree back to
// HTML.  Rendering an unmodified tree reproduces well-formed input byte for
// byte; malformed input is recovered from with warnings instead of errors.
package dompa

import (
	"fmt"
	"io"
)

// Document owns a parsed tree.  It is not safe for concurrent mutation.
type Document struct {
	root  *Node
	warns []error
}

// Parse HTML.  Returns MalformedDocumentErr when data yields no node at all
// (empty input, or nothing but stray closing tags).  Recoverable problems are
// available from Warnings.
//
// A doctype is kept only as the very first node.  One that follows anything
// else, even a comment or a newline, is dropped with a DoctypePlacementErr
// warning.
func Parse(data []byte, opts ...Option) (*Document, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", MalformedDocumentErr, EmptyInputErr)
	}

	root, warns := parse(data, o.logger)
	if len(root.children) == 0 {
		return nil, fmt.Errorf("%w: no nodes in %d bytes of input", MalformedDocumentErr, len(data))
	}

	return &Document{root: root, warns: warns}, nil
}

// ParseString is Parse for a string.
func ParseString(html string, opts ...Option) (*Document, error) {
	return Parse([]byte(html), opts...)
}

// Render writes the document as HTML to w.
func (doc *Document) Render(w io.Writer) error {
	return Render(w, doc.root)
}

// HTML renders the document to a string.
func (doc *Document) HTML() string {
	return doc.root.HTML()
}

// Nodes returns the top-level nodes in document order.  The slice is a copy;
// the nodes are live and may be mutated in place.
func (doc *Document) Nodes() []*Node {
	return doc.root.Children()
}

// Root returns the document node, the parent of the top-level nodes.  Use it
// to add or remove top-level nodes.
func (doc *Document) Root() *Node {
	return doc.root
}

// Warnings returns the problems recovered from while parsing.
func (doc *Document) Warnings() []error {
	return append([]error(nil), doc.warns...)
}

// Parent returns the parent of node, the document node for top-level nodes,
// or nil if node is not in the document.  Nodes keep no parent pointers, so
// this walks the tree.
func (doc *Document) Parent(node *Node) *Node {
	stk := make(stack[*Node], 0, 16)
	stk.Push(doc.root)

	for parent, ok := stk.Pop(); ok; parent, ok = stk.Pop() {
		for _, child := range parent.children {
			if child == node {
				return parent
			}
			stk.Push(child)
		}
	}

	return nil
}

// Traverse rebuilds the top-level nodes with fn; see Traverse.  On error the
// document is left unchanged.
func (doc *Document) Traverse(fn func(*Node) *Node) error {
	nodes, err := Traverse(doc.root.children, fn)
	if err != nil {
		return err
	}

	root := newDocument()
	for _, node := range nodes {
		if err := root.AppendChild(node); err != nil {
			return fmt.Errorf("traverse: %w", err)
		}
	}

	for _, old := range doc.root.children {
		old.attached = false
	}
	doc.root.children = root.children
	return nil
}

// Find returns every node in the document matching pred, in document order.
func (doc *Document) Find(pred func(*Node) bool) []*Node {
	return Find(doc.root.children, pred)
}
