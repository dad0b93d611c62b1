package dompa

import (
	"fmt"
	"log/slog"
)

// builder assembles tokens into a tree under a document node, keeping the
// elements that are still open on an explicit stack (innermost last).
type builder struct {
	lx     *lexer
	doc    *Node
	open   stack[*Node]
	warns  []error
	logger *slog.Logger
}

func newBuilder(lx *lexer, logger *slog.Logger) *builder {
	return &builder{
		lx:     lx,
		doc:    newDocument(),
		open:   make(stack[*Node], 0, 16),
		logger: logger,
	}
}

func (b *builder) warn(err error) {
	b.logger.Debug("recovered from malformed markup", slog.Any("err", err))
	b.warns = append(b.warns, err)
}

func (b *builder) drainLexer() {
	for _, warn := range b.lx.warns {
		b.warn(warn)
	}
	b.lx.warns = b.lx.warns[:0]
}

func (b *builder) parent() *Node {
	if node, ok := b.open.Peek(); ok {
		return node
	}
	return b.doc
}

// build consumes every token and returns the document node.  It never fails:
// anything malformed is recovered from and reported as a warning.
func (b *builder) build() *Node {
	for tok, ok := b.lx.next(); ok; tok, ok = b.lx.next() {
		b.drainLexer()

		switch tok.Kind {
		case doctypeToken:
			b.doctype(tok)
		case commentToken:
			b.parent().adopt(&Node{kind: CommentNode, text: string(tok.Data), loc: tok.Loc})
		case textToken, rawTextToken:
			b.parent().adopt(&Node{kind: TextNode, text: string(tok.Data), loc: tok.Loc})
		case tagOpenToken:
			b.openTag(tok)
		case tagCloseToken:
			b.closeTag(tok)
		default:
			b.warn(fmt.Errorf("%s: error parsing document: unexpected %s", tok.Loc, tok.Kind))
		}
	}

	b.drainLexer()

	for node, ok := b.open.Pop(); ok; node, ok = b.open.Pop() {
		b.warn(fmt.Errorf("%s: error parsing document: %w: <%s>", node.loc, UnclosedTagErr, node.name))
	}

	b.logger.Debug("parsed document",
		slog.Int("nodes", len(b.doc.children)),
		slog.Int("warnings", len(b.warns)))

	return b.doc
}

func (b *builder) doctype(tok token) {
	if b.open.Len() > 0 || len(b.doc.children) > 0 {
		b.warn(fmt.Errorf("%s: error parsing doctype: %w", tok.Loc, DoctypePlacementErr))
		return
	}
	b.doc.adopt(&Node{kind: DoctypeNode, text: string(tok.Data), loc: tok.Loc})
}

func (b *builder) openTag(tok token) {
	for top, ok := b.open.Peek(); ok && closesImplicitly(tok.Atom, top.atom); top, ok = b.open.Peek() {
		b.open.Pop()
	}

	node := &Node{
		kind:  ElementNode,
		name:  tok.Name,
		atom:  tok.Atom,
		attrs: tok.Attrs,
		loc:   tok.Loc,
	}
	b.parent().adopt(node)

	if !tok.SelfClosing && !tok.Void {
		b.open.Push(node)
	}
}

func (b *builder) closeTag(tok token) {
	i := b.open.LastIndex(func(node *Node) bool { return node.name == tok.Name })
	if i < 0 {
		expected := "nothing"
		if top, ok := b.open.Peek(); ok {
			expected = fmt.Sprintf("</%s>", top.name)
		}
		b.warn(fmt.Errorf("%s: error parsing closing tag: %w: expected %s but got </%s>", tok.Loc, TagMismatchErr, expected, tok.Name))
		return
	}

	for j := b.open.Len() - 1; j > i; j-- {
		node := b.open[j]
		b.warn(fmt.Errorf("%s: error parsing document: %w: <%s> closed by </%s>", node.loc, UnclosedTagErr, node.name, tok.Name))
	}
	b.open = b.open[:i]
}

// parse builds the tree for data.  The returned document node is never nil.
func parse(data []byte, logger *slog.Logger) (doc *Node, warns []error) {
	b := newBuilder(newLexer(data), logger)
	return b.build(), b.warns
}
