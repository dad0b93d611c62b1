package dompa

import (
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestWriteAttr(t *testing.T) {
	tests := []struct {
		name     string
		attr     Attr
		expected string
	}{
		{name: "bool", attr: Attr{Key: "disabled", Bool: true}, expected: `disabled`},
		{name: "bool ignores value", attr: Attr{Key: "checked", Val: "x", Bool: true}, expected: `checked`},
		{name: "plain", attr: Attr{Key: "class", Val: "a b"}, expected: `class="a b"`},
		{name: "empty", attr: Attr{Key: "alt"}, expected: `alt=""`},
		{name: "not escaped", attr: Attr{Key: "href", Val: "?a=1&b=<2>"}, expected: `href="?a=1&b=<2>"`},
		{name: "double quote", attr: Attr{Key: "title", Val: `say "hi"`}, expected: `title='say "hi"'`},
		{name: "single quote", attr: Attr{Key: "title", Val: `it's`}, expected: `title="it's"`},
		{name: "both quotes", attr: Attr{Key: "title", Val: `"it's"`}, expected: `title="&quot;it's&quot;"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.String(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestRenderNodeKinds(t *testing.T) {
	img := NewElement("img", Attr{Key: "src", Val: "a.png"})
	p := NewElement("p", Attr{Key: "hidden", Bool: true})
	_ = p.AppendChild(NewText("a < b"))

	tests := []struct {
		name     string
		node     *Node
		expected string
	}{
		{name: "text is not escaped", node: NewText("a & b"), expected: "a & b"},
		{name: "comment", node: NewComment(" c "), expected: "<!-- c -->"},
		{name: "doctype", node: NewDoctype("html"), expected: "<!DOCTYPE html>"},
		{name: "empty doctype", node: NewDoctype(""), expected: "<!DOCTYPE>"},
		{name: "void element", node: img, expected: `<img src="a.png">`},
		{name: "element", node: p, expected: `<p hidden>a < b</p>`},
		{name: "empty element", node: NewElement("div"), expected: `<div></div>`},
		{name: "fragment", node: NewFragment(NewText("x"), NewElement("br"), NewText("y")), expected: "x<br>y"},
		{name: "custom element", node: NewElement("x-foo"), expected: "<x-foo></x-foo>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.HTML(); got != tt.expected {
				t.Errorf("HTML() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderMultipleRoots(t *testing.T) {
	var b strings.Builder
	err := Render(&b, NewElement("header"), NewElement("main"), nil, NewElement("footer"))
	if err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "<header></header><main></main><footer></footer>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderAdjacentText(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []*Node
		expected string
	}{
		{name: "tag", nodes: []*Node{NewText("a<"), NewText("p>")}, expected: "a&lt;p>"},
		{name: "closing tag", nodes: []*Node{NewText("<"), NewText("/b>")}, expected: "&lt;/b>"},
		{name: "comment across nodes", nodes: []*Node{NewText("x<!"), NewText("-"), NewText("-c-->")}, expected: "x&lt;!--c-->"},
		{name: "doctype", nodes: []*Node{NewText("<!DOC"), NewText("TYPE html>")}, expected: "&lt;!DOCTYPE html>"},
		{name: "nil between", nodes: []*Node{NewText("a<"), nil, NewText("i>")}, expected: "a&lt;i>"},
		{name: "still text", nodes: []*Node{NewText("a <"), NewText(" b")}, expected: "a < b"},
		{name: "only the last one", nodes: []*Node{NewText("1<2<"), NewText("b>")}, expected: "1<2&lt;b>"},
		{name: "element follows", nodes: []*Node{NewText("a<"), NewElement("b")}, expected: "a<<b></b>"},
		{name: "inside an element", nodes: []*Node{NewFragment(NewText("a<"), NewText("br>"))}, expected: "a&lt;br>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			if err := Render(&b, tt.nodes...); err != nil {
				t.Fatal(err)
			}
			if got := b.String(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

type failingWriter struct {
	n int
}

var errWrite = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errWrite
	}
	w.n--
	return len(p), nil
}

func TestRenderWriteError(t *testing.T) {
	doc := mustParse(t, `<div><p>a</p><p>b</p></div>`)

	for n := 0; n < 4; n++ {
		w := &failingWriter{n: n}
		if err := doc.Render(w); !errors.Is(err, errWrite) {
			t.Errorf("after %d writes: err = %v, want errWrite", n, err)
		}
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if err := Render(io.Discard, &Node{}); err == nil {
		t.Errorf("rendering an invalid node succeeded")
	}
}

// Rendered output must tokenize the same way in golang.org/x/net/html: the
// same start tags in the same order.
func TestRenderAgreesWithNetHTML(t *testing.T) {
	inputs := []string{
		`<!DOCTYPE html><html><head><title>T</title></head><body><p class="x">a<br>b</p></body></html>`,
		`<div><span>text</div>`,
		`<ul><li>a<li>b</ul>`,
		`<a title='say "hi"' href=/x>y</a><input disabled>`,
		`<script>if (a<b) { document.write("<p>") }</script><em>z</em>`,
		`<table><tr><td>1<td>2<tr><td>3</table>`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc := mustParse(t, input)

			var ours []string
			for _, node := range doc.Find(func(n *Node) bool { return n.Kind() == ElementNode }) {
				ours = append(ours, node.Name())
			}

			var theirs []string
			z := html.NewTokenizer(strings.NewReader(doc.HTML()))
			for {
				tt := z.Next()
				if tt == html.ErrorToken {
					break
				}
				if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
					name, _ := z.TagName()
					theirs = append(theirs, string(name))
				}
			}

			if strings.Join(ours, " ") != strings.Join(theirs, " ") {
				t.Errorf("start tags differ:\n ours: %v\ntheirs: %v", ours, theirs)
			}
		})
	}
}
