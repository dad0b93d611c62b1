package dompa

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html/atom"
)

type tokenKind int

const (
	invalidToken tokenKind = iota
	textToken
	rawTextToken
	tagOpenToken
	tagCloseToken
	commentToken
	doctypeToken
)

func (kind tokenKind) String() string {
	switch kind {
	case textToken:
		return "textToken"
	case rawTextToken:
		return "rawTextToken"
	case tagOpenToken:
		return "tagOpenToken"
	case tagCloseToken:
		return "tagCloseToken"
	case commentToken:
		return "commentToken"
	case doctypeToken:
		return "doctypeToken"
	default:
		return "invalidToken"
	}
}

type token struct {
	Kind tokenKind
	Loc  Location

	// Payload of text, raw text, comment and doctype tokens.
	Data []byte

	// Tag name and attributes of tag tokens.
	Name        string
	Atom        atom.Atom
	Attrs       Attrs
	SelfClosing bool
	Void        bool
}

func (tok token) String() string {
	switch tok.Kind {
	case tagOpenToken, tagCloseToken:
		return fmt.Sprintf("%s: %s %q %v", tok.Loc, tok.Kind, tok.Name, tok.Attrs)
	default:
		return fmt.Sprintf("%s: %s %q", tok.Loc, tok.Kind, tok.Data)
	}
}

func stepUntil(data []byte, prefix []byte, loc Location) (Location, bool) {
	for loc.Pos < len(data) && !bytes.HasPrefix(data[loc.Pos:], prefix) {
		if data[loc.Pos] == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
		loc.Pos++
	}

	return loc, loc.Pos < len(data)
}

// stepTo advances loc to byte offset pos, keeping line and column in step.
func stepTo(data []byte, loc Location, pos int) Location {
	for loc.Pos < pos && loc.Pos < len(data) {
		if data[loc.Pos] == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
		loc.Pos++
	}
	return loc
}

var (
	commentStart = []byte("<!--")
	commentEnd   = []byte("-->")
	closeStart   = []byte("</")
	doctypeStart = []byte("<!doctype")
	tagEnd       = []byte(">")
)

func isSpace(c byte) bool {
	return c == '\t' || c == '\n' || c == '\f' || c == '\r' || c == ' '
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// asciiLower lowercases A-Z only, so offsets into the result match the input
// and invalid UTF-8 is kept as-is.
func asciiLower(data []byte) []byte {
	lower := make([]byte, len(data))
	for i, c := range data {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return lower
}

func lowerString(s string) string {
	return string(asciiLower([]byte(s)))
}

func skipSpace(data []byte, pos int) int {
	for pos < len(data) && isSpace(data[pos]) {
		pos++
	}
	return pos
}

// markupAt reports the kind of markup starting at data[pos], which must be
// '<'.  A '<' that starts none of them is literal text.
func markupAt(data []byte, pos int) tokenKind {
	rest := data[pos:]
	switch {
	case len(rest) < 2:
		return textToken
	case isLetter(rest[1]):
		return tagOpenToken
	case rest[1] == '/':
		return tagCloseToken
	case bytes.HasPrefix(rest, commentStart):
		return commentToken
	case len(rest) >= len(doctypeStart) && bytes.EqualFold(rest[:len(doctypeStart)], doctypeStart):
		return doctypeToken
	default:
		return textToken
	}
}

// lexer turns HTML into tokens one at a time.  It is a one-shot sequence:
// once next reports false it keeps doing so.
type lexer struct {
	data []byte
	loc  Location

	// Name of the raw-text element whose content comes next, if any.
	rawName string

	warns []error
	done  bool
}

func newLexer(data []byte) *lexer {
	return &lexer{data: data, loc: Location{Line: 1, Col: 1, Pos: 0}}
}

func (lx *lexer) warn(loc Location, what string, err error) {
	lx.warns = append(lx.warns, fmt.Errorf("%s: error lexing %s: %w", loc, what, err))
}

// next returns the next token, or false once the input is exhausted.
func (lx *lexer) next() (token, bool) {
	for !lx.done {
		if lx.rawName != "" {
			if tok, ok := lx.lexRawText(); ok {
				return tok, true
			}
			continue
		}

		if lx.loc.Pos >= len(lx.data) {
			lx.done = true
			break
		}

		var tok token
		var ok bool

		if lx.data[lx.loc.Pos] != '<' {
			tok, ok = lx.lexText()
		} else {
			switch markupAt(lx.data, lx.loc.Pos) {
			case commentToken:
				tok, ok = lx.lexComment()
			case doctypeToken:
				tok, ok = lx.lexDoctype()
			case tagCloseToken:
				tok, ok = lx.lexTagClose()
			case tagOpenToken:
				tok, ok = lx.lexTagOpen()
			default:
				tok, ok = lx.lexText()
			}
		}

		if ok {
			return tok, true
		}
	}

	return token{}, false
}

func (lx *lexer) lexText() (token, bool) {
	tok := token{Kind: textToken, Loc: lx.loc}

	// the first byte is always text, even if it is a '<' that starts no markup
	end := lx.loc.Pos + 1
	for end < len(lx.data) {
		i := bytes.IndexByte(lx.data[end:], '<')
		if i < 0 {
			end = len(lx.data)
			break
		}
		end += i
		if markupAt(lx.data, end) != textToken {
			break
		}
		end++
	}

	tok.Data = lx.data[lx.loc.Pos:end]
	lx.loc = stepTo(lx.data, lx.loc, end)
	return tok, true
}

func (lx *lexer) lexComment() (token, bool) {
	tok := token{Kind: commentToken, Loc: lx.loc}

	loc := stepTo(lx.data, lx.loc, lx.loc.Pos+len(commentStart))
	newLoc, ok := stepUntil(lx.data, commentEnd, loc)
	tok.Data = lx.data[loc.Pos:newLoc.Pos]
	if !ok {
		// the remainder of the input is the comment body
		lx.warn(tok.Loc, "comment", EofErr)
		lx.loc = newLoc
		return tok, true
	}

	lx.loc = stepTo(lx.data, newLoc, newLoc.Pos+len(commentEnd))
	return tok, true
}

func (lx *lexer) lexDoctype() (token, bool) {
	tok := token{Kind: doctypeToken, Loc: lx.loc}

	loc := stepTo(lx.data, lx.loc, lx.loc.Pos+len(doctypeStart))
	newLoc, ok := stepUntil(lx.data, tagEnd, loc)
	tok.Data = bytes.TrimSpace(lx.data[loc.Pos:newLoc.Pos])
	if !ok {
		lx.warn(tok.Loc, "doctype", EofErr)
		lx.loc = newLoc
		return tok, true
	}

	lx.loc = stepTo(lx.data, newLoc, newLoc.Pos+len(tagEnd))
	return tok, true
}

func (lx *lexer) lexTagClose() (token, bool) {
	tok := token{Kind: tagCloseToken, Loc: lx.loc}

	loc := stepTo(lx.data, lx.loc, lx.loc.Pos+2)
	newLoc, ok := stepUntil(lx.data, tagEnd, loc)
	if ok {
		lx.loc = stepTo(lx.data, newLoc, newLoc.Pos+len(tagEnd))
	} else {
		lx.warn(tok.Loc, "closing tag", UnclosedTagErr)
		lx.loc = newLoc
	}

	// the name ends where a raw-text closer would, at whitespace or '/'
	content := lx.data[loc.Pos:newLoc.Pos]
	start := skipSpace(content, 0)
	end := start
	for end < len(content) && !isSpace(content[end]) && content[end] != '/' {
		end++
	}
	if end == start {
		lx.warn(tok.Loc, "closing tag", EmptyContentErr)
		return tok, false
	}

	tok.Name = string(asciiLower(content[start:end]))
	tok.Atom = lookupAtom(tok.Name)
	return tok, true
}

func (lx *lexer) lexTagOpen() (token, bool) {
	tok := token{Kind: tagOpenToken, Loc: lx.loc}
	data := lx.data

	pos := lx.loc.Pos + 1
	start := pos
	for pos < len(data) && !isSpace(data[pos]) && data[pos] != '/' && data[pos] != '>' {
		pos++
	}
	tok.Name = string(asciiLower(data[start:pos]))
	tok.Atom = lookupAtom(tok.Name)
	tok.Void = voidElements[tok.Atom]

	closed := false
	for !closed {
		pos = skipSpace(data, pos)
		if pos >= len(data) {
			break
		}

		switch data[pos] {
		case '>':
			pos++
			closed = true
			continue
		case '/':
			if pos+1 < len(data) && data[pos+1] == '>' {
				tok.SelfClosing = true
				pos += 2
				closed = true
			} else {
				// stray slash between attributes
				pos++
			}
			continue
		case '=':
			// no attribute name may start with '='
			lx.warn(stepTo(data, lx.loc, pos), "attribute name", EmptyContentErr)
			pos++
			continue
		}

		var attr Attr
		attrLoc := stepTo(data, lx.loc, pos)
		attr, pos = lexAttr(data, pos)
		if tok.Attrs.set(attr) {
			lx.warn(attrLoc, fmt.Sprintf("attribute %q", attr.Key), DuplicateAttrErr)
		}
	}

	if !closed {
		// emit the tag as far as it goes
		lx.warn(tok.Loc, fmt.Sprintf("opening tag <%s>", tok.Name), UnclosedTagErr)
	}

	lx.loc = stepTo(data, lx.loc, pos)

	if !tok.SelfClosing && isRawText(tok.Atom) {
		lx.rawName = tok.Name
	}

	return tok, true
}

// lexAttr reads one attribute starting at data[pos], which is none of space,
// '/', '=' and '>'.  Returns the attribute and the position after it.
func lexAttr(data []byte, pos int) (Attr, int) {
	start := pos
	for pos < len(data) && !isSpace(data[pos]) && data[pos] != '=' && data[pos] != '>' && data[pos] != '/' {
		pos++
	}
	attr := Attr{Key: string(asciiLower(data[start:pos]))}

	eq := skipSpace(data, pos)
	if eq >= len(data) || data[eq] != '=' {
		attr.Bool = true
		return attr, pos
	}

	pos = skipSpace(data, eq+1)
	if pos >= len(data) {
		return attr, pos
	}

	switch quote := data[pos]; quote {
	case '"', '\'':
		end := bytes.IndexByte(data[pos+1:], quote)
		if end < 0 {
			attr.Val = string(data[pos+1:])
			return attr, len(data)
		}
		attr.Val = string(data[pos+1 : pos+1+end])
		return attr, pos + 1 + end + 1
	default:
		start := pos
		for pos < len(data) && !isSpace(data[pos]) && data[pos] != '>' {
			pos++
		}
		attr.Val = string(data[start:pos])
		return attr, pos
	}
}

// lexRawText reads the content of a raw-text element up to its closing tag,
// which is left for lexTagClose.
func (lx *lexer) lexRawText() (token, bool) {
	tok := token{Kind: rawTextToken, Loc: lx.loc}
	name := lx.rawName
	lx.rawName = ""

	rest := lx.data[lx.loc.Pos:]
	end := len(rest)
	for from := 0; from < len(rest); {
		i := bytes.Index(rest[from:], closeStart)
		if i < 0 {
			break
		}
		i += from
		after := i + len(closeStart) + len(name)
		if after <= len(rest) && bytes.EqualFold(rest[i+len(closeStart):after], []byte(name)) &&
			(after == len(rest) || isSpace(rest[after]) || rest[after] == '/' || rest[after] == '>') {
			end = i
			break
		}
		from = i + 1
	}

	if end == 0 {
		return tok, false
	}

	tok.Data = rest[:end]
	lx.loc = stepTo(lx.data, lx.loc, lx.loc.Pos+end)
	return tok, true
}

// lex drains a lexer into a slice.  The tree builder pulls tokens one at a
// time instead; this is for inspecting a token stream whole.
func lex(data []byte) (tokens []token, warns []error) {
	lx := newLexer(data)
	tokens = make([]token, 0, len(data)/5)
	for tok, ok := lx.next(); ok; tok, ok = lx.next() {
		tokens = append(tokens, tok)
	}
	return tokens, lx.warns
}
