package dompa

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"
)

// Cursor location in a file.
type Location struct {
	Line int // 1-indexed line number
	Col  int // 1-indexed column number
	Pos  int // 0-indexed byte offset
}

// Error message-friendly string representation.
func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Col)
}

// Kind of node (e.g. element node, text node, etc.).
type NodeKind int

const (
	InvalidNode  NodeKind = iota // Signifies an erroneous or zero node
	DocumentNode                 // Invisible container of the top-level nodes
	ElementNode                  // Element
	TextNode                     // Content between start and end tags
	CommentNode                  // Comment
	DoctypeNode                  // Doctype declaration (e.g. <!DOCTYPE html>)
	FragmentNode                 // Stands in for its children
)

// Error message-friendly string representation.
func (kind NodeKind) String() string {
	switch kind {
	case DocumentNode:
		return "DocumentNode"
	case TextNode:
		return "TextNode"
	case ElementNode:
		return "ElementNode"
	case CommentNode:
		return "CommentNode"
	case DoctypeNode:
		return "DoctypeNode"
	case FragmentNode:
		return "FragmentNode"
	default:
		return "InvalidNode"
	}
}

// Node in an HTML tree.  Nodes represent parts of an HTML document according
// to their NodeKind.
//
// Fields are only reachable through methods so that the tree invariants hold
// after any mutation: void elements and leaf nodes have no children,
// attribute keys are unique, a doctype is only ever the first top-level node,
// and every node has at most one parent.
type Node struct {
	kind NodeKind

	// Tag name for ElementNode.
	name string
	atom atom.Atom

	// Payload for TextNode, CommentNode and DoctypeNode.
	text string

	attrs    Attrs
	children []*Node

	loc      Location
	attached bool
}

// NewElement makes a detached element.  The name is lowercased.  It panics
// on an attribute that SetAttr would reject.
func NewElement(name string, attrs ...Attr) *Node {
	name = lowerString(name)
	node := &Node{kind: ElementNode, name: name, atom: lookupAtom(name)}
	for _, attr := range attrs {
		if err := checkAttrName(attr.Key); err != nil {
			panic(fmt.Sprintf("dompa: NewElement: %v", err))
		}
		node.attrs.set(attr)
	}
	return node
}

// checkAttrName rejects names that would not parse back as the same single
// attribute.
func checkAttrName(key string) error {
	if key == "" || strings.ContainsAny(key, "\t\n\f\r /=>\"'") {
		return fmt.Errorf("%q: %w", key, AttrNameErr)
	}
	return nil
}

// NewText makes a detached text node holding raw, unescaped text.
func NewText(text string) *Node {
	return &Node{kind: TextNode, text: text}
}

// NewComment makes a detached comment node.
func NewComment(text string) *Node {
	return &Node{kind: CommentNode, text: text}
}

// NewDoctype makes a detached doctype node, e.g. NewDoctype("html").
func NewDoctype(text string) *Node {
	return &Node{kind: DoctypeNode, text: text}
}

// NewFragment makes a fragment adopting children.  It panics if a child
// cannot be adopted (already attached, or a doctype), like appending an
// attached node does in golang.org/x/net/html.
func NewFragment(children ...*Node) *Node {
	node := &Node{kind: FragmentNode}
	for _, child := range children {
		if err := node.AppendChild(child); err != nil {
			panic(fmt.Sprintf("dompa: NewFragment: %v", err))
		}
	}
	return node
}

func newDocument() *Node {
	return &Node{kind: DocumentNode}
}

func (node *Node) Kind() NodeKind { return node.kind }

// Name returns the lowercase tag name of an element, or "" for other kinds.
func (node *Node) Name() string { return node.name }

// Atom returns the atom of the tag name, or 0 for unknown names.
func (node *Node) Atom() atom.Atom { return node.atom }

// Text returns the raw payload of a text, comment or doctype node.
func (node *Node) Text() string { return node.text }

// Loc returns where the node began in the source.  Nodes built in code have
// the zero Location.
func (node *Node) Loc() Location { return node.loc }

// IsVoid reports whether node is a void element.
func (node *Node) IsVoid() bool {
	return node.kind == ElementNode && voidElements[node.atom]
}

// Attrs returns a copy of the attributes in source order.
func (node *Node) Attrs() Attrs { return node.attrs.clone() }

// Attr returns the attribute named key.
func (node *Node) Attr(key string) (Attr, bool) { return node.attrs.Get(key) }

// Children returns a copy of the child list.  The children themselves are
// live.
func (node *Node) Children() []*Node {
	return append([]*Node(nil), node.children...)
}

// FirstChild returns the first child or nil.
func (node *Node) FirstChild() *Node {
	if len(node.children) == 0 {
		return nil
	}
	return node.children[0]
}

// SetText replaces the payload of a text, comment or doctype node.
func (node *Node) SetText(text string) error {
	switch node.kind {
	case TextNode, CommentNode, DoctypeNode:
		node.text = text
		return nil
	default:
		return fmt.Errorf("set text on %s: %w", node.kind, LeafChildErr)
	}
}

// SetAttr sets a string attribute.  An existing key keeps its position.
// Empty keys and keys holding whitespace, quotes, '/', '=' or '>' are
// rejected with AttrNameErr.
func (node *Node) SetAttr(key, val string) error {
	return node.setAttr(Attr{Key: key, Val: val})
}

// SetBoolAttr sets a valueless attribute (e.g. disabled).
func (node *Node) SetBoolAttr(key string) error {
	return node.setAttr(Attr{Key: key, Bool: true})
}

func (node *Node) setAttr(attr Attr) error {
	if node.kind != ElementNode {
		return fmt.Errorf("set attribute on %s: %w", node.kind, NotElementErr)
	}
	if err := checkAttrName(attr.Key); err != nil {
		return fmt.Errorf("set attribute: %w", err)
	}
	node.attrs.set(attr)
	return nil
}

// RemoveAttr deletes key and reports whether it was present.
func (node *Node) RemoveAttr(key string) bool {
	return node.attrs.remove(key)
}

// canAdopt checks that child may be inserted into node at index i.
func (node *Node) canAdopt(i int, child *Node) error {
	if child == nil || child.kind == DocumentNode || child.kind == InvalidNode {
		return AdoptErr
	}
	if child.attached || child == node || child.contains(node) {
		return AdoptErr
	}

	switch node.kind {
	case ElementNode:
		if node.IsVoid() {
			return fmt.Errorf("<%s>: %w", node.name, VoidChildErr)
		}
	case DocumentNode, FragmentNode:
	default:
		return fmt.Errorf("%s: %w", node.kind, LeafChildErr)
	}

	if i < 0 || i > len(node.children) {
		return fmt.Errorf("%d of %d: %w", i, len(node.children), IndexErr)
	}

	if child.kind == DoctypeNode {
		if node.kind != DocumentNode || i != 0 || node.hasDoctype() {
			return DoctypePlacementErr
		}
	} else if node.kind == DocumentNode && i == 0 && node.hasDoctype() {
		return DoctypePlacementErr
	}

	return nil
}

func (node *Node) hasDoctype() bool {
	return len(node.children) > 0 && node.children[0].kind == DoctypeNode
}

func (node *Node) contains(other *Node) bool {
	stk := make(stack[*Node], 0, 16)
	stk.Push(node)

	for n, ok := stk.Pop(); ok; n, ok = stk.Pop() {
		if n == other {
			return true
		}
		for _, child := range n.children {
			stk.Push(child)
		}
	}

	return false
}

// AppendChild adds child as the last child of node.
func (node *Node) AppendChild(child *Node) error {
	return node.InsertChild(len(node.children), child)
}

// InsertChild inserts child before position i.
func (node *Node) InsertChild(i int, child *Node) error {
	if err := node.canAdopt(i, child); err != nil {
		return err
	}
	node.children = append(node.children, nil)
	copy(node.children[i+1:], node.children[i:])
	node.children[i] = child
	child.attached = true
	return nil
}

// RemoveChild detaches child from node.  The detached child may be adopted
// elsewhere.
func (node *Node) RemoveChild(child *Node) error {
	for i, c := range node.children {
		if c == child {
			node.children = append(node.children[:i], node.children[i+1:]...)
			child.attached = false
			return nil
		}
	}
	return fmt.Errorf("remove child: %w", IndexErr)
}

// ReplaceChild swaps old for repl at the same position.
func (node *Node) ReplaceChild(old, repl *Node) error {
	i := -1
	for j, c := range node.children {
		if c == old {
			i = j
			break
		}
	}
	if i < 0 {
		return fmt.Errorf("replace child: %w", IndexErr)
	}

	node.children = append(node.children[:i], node.children[i+1:]...)
	if err := node.canAdopt(i, repl); err != nil {
		node.children = append(node.children[:i], append([]*Node{old}, node.children[i:]...)...)
		return err
	}
	old.attached = false
	node.children = append(node.children[:i], append([]*Node{repl}, node.children[i:]...)...)
	repl.attached = true
	return nil
}

// Clone returns a detached deep copy of node.
func (node *Node) Clone() *Node {
	c := &Node{
		kind:  node.kind,
		name:  node.name,
		atom:  node.atom,
		text:  node.text,
		attrs: node.attrs.clone(),
		loc:   node.loc,
	}
	if len(node.children) > 0 {
		c.children = make([]*Node, len(node.children))
		for i, child := range node.children {
			c.children[i] = child.Clone()
			c.children[i].attached = true
		}
	}
	return c
}

// adopt appends without checks.  Only the tree builder uses it; the tokens
// it builds from already satisfy the invariants.
func (node *Node) adopt(child *Node) {
	child.attached = true
	node.children = append(node.children, child)
}
