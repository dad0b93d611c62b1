package dompa

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func summarize(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		switch tok.Kind {
		case tagOpenToken:
			var b strings.Builder
			b.WriteString("open " + tok.Name)
			for _, attr := range tok.Attrs {
				b.WriteString(" " + attr.String())
			}
			if tok.SelfClosing {
				b.WriteString(" /")
			}
			out[i] = b.String()
		case tagCloseToken:
			out[i] = "close " + tok.Name
		default:
			out[i] = fmt.Sprintf("%s %q", tok.Kind, tok.Data)
		}
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		warn     error
	}{
		{
			name:     "element with text",
			input:    `<div class="a">hi</div>`,
			expected: []string{`open div class="a"`, `textToken "hi"`, "close div"},
		},
		{
			name:     "doctype",
			input:    `<!DOCTYPE html><html></html>`,
			expected: []string{`doctypeToken "html"`, "open html", "close html"},
		},
		{
			name:     "lowercase doctype",
			input:    `<!doctype html>`,
			expected: []string{`doctypeToken "html"`},
		},
		{
			name:     "comment",
			input:    `<!-- c -->`,
			expected: []string{`commentToken " c "`},
		},
		{
			name:     "empty comment",
			input:    `<!---->x`,
			expected: []string{`commentToken ""`, `textToken "x"`},
		},
		{
			name:     "boolean attribute",
			input:    `<input disabled>`,
			expected: []string{"open input disabled"},
		},
		{
			name:     "self-closing",
			input:    `<br/>`,
			expected: []string{"open br /"},
		},
		{
			name:     "self-closing after boolean attribute",
			input:    `<input checked />`,
			expected: []string{"open input checked /"},
		},
		{
			name:     "single-quoted and unquoted values",
			input:    `<a href='x' title=y>`,
			expected: []string{`open a href="x" title="y"`},
		},
		{
			name:     "unquoted value keeps slashes",
			input:    `<a href=/x/y/>`,
			expected: []string{`open a href="/x/y/"`},
		},
		{
			name:     "spaces around equals",
			input:    `<p class = "x" >`,
			expected: []string{`open p class="x"`},
		},
		{
			name:     "uppercase names are lowercased",
			input:    `<DIV ID="x"></DIV>`,
			expected: []string{`open div id="x"`, "close div"},
		},
		{
			name:     "less-than in text",
			input:    `a < b`,
			expected: []string{`textToken "a < b"`},
		},
		{
			name:     "processing instruction is text",
			input:    `<?xml version="1.0"?><a>`,
			expected: []string{`textToken "<?xml version=\"1.0\"?>"`, "open a"},
		},
		{
			name:     "unterminated comment",
			input:    `<!-- open`,
			expected: []string{`commentToken " open"`},
			warn:     EofErr,
		},
		{
			name:     "leading equals is not part of a name",
			input:    `<a =x/=y>`,
			expected: []string{"open a x y"},
			warn:     EmptyContentErr,
		},
		{
			name:     "invalid UTF-8 in names is kept",
			input:    "<D\xffIV A\xff=1></D\xffIV>",
			expected: []string{"open d\xffiv a\xff=\"1\"", "close d\xffiv"},
		},
		{
			name:     "unterminated tag",
			input:    `<div class="a`,
			expected: []string{`open div class="a"`},
			warn:     UnclosedTagErr,
		},
		{
			name:     "duplicate attribute",
			input:    `<a b="1" c b="2">`,
			expected: []string{`open a b="2" c`},
			warn:     DuplicateAttrErr,
		},
		{
			name:     "empty closing tag",
			input:    `</>x`,
			expected: []string{`textToken "x"`},
			warn:     EmptyContentErr,
		},
		{
			name:     "closing tag with junk",
			input:    `</div foo>`,
			expected: []string{"close div"},
		},
		{
			name:     "closing name ends at a slash",
			input:    `</br/><script>a</script/x>`,
			expected: []string{"close br", "open script", `rawTextToken "a"`, "close script"},
		},
		{
			name:     "script is raw text",
			input:    `<script>if (a<b) { x = "</div>" }</script>`,
			expected: []string{"open script", `rawTextToken "if (a<b) { x = \"</div>\" }"`, "close script"},
		},
		{
			name:     "raw text closes case-insensitively",
			input:    `<textarea><b></TEXTAREA >`,
			expected: []string{"open textarea", `rawTextToken "<b>"`, "close textarea"},
		},
		{
			name:     "raw text needs a full closing name",
			input:    `<style>a</styles></style>`,
			expected: []string{"open style", `rawTextToken "a</styles>"`, "close style"},
		},
		{
			name:     "empty raw text",
			input:    `<style></style>`,
			expected: []string{"open style", "close style"},
		},
		{
			name:     "partial closing name at end of input",
			input:    `<script>a</scr`,
			expected: []string{"open script", `rawTextToken "a</scr"`},
		},
		{
			name:     "many raw-text elements",
			input:    `<script>a</script><style>b</STYLE><script>c</script>`,
			expected: []string{"open script", `rawTextToken "a"`, "close script", "open style", `rawTextToken "b"`, "close style", "open script", `rawTextToken "c"`, "close script"},
		},
		{
			name:     "unterminated raw text",
			input:    `<script>x`,
			expected: []string{"open script", `rawTextToken "x"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, warns := lex([]byte(tt.input))
			if diff := cmp.Diff(tt.expected, summarize(tokens)); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}

			if tt.warn == nil {
				if len(warns) != 0 {
					t.Errorf("unexpected warnings: %v", warns)
				}
				return
			}
			found := false
			for _, warn := range warns {
				if errors.Is(warn, tt.warn) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings %v do not include %v", warns, tt.warn)
			}
		})
	}
}

func TestLexVoidFlag(t *testing.T) {
	tokens, _ := lex([]byte(`<img src="a.png"><div></div>`))
	if !tokens[0].Void {
		t.Errorf("img not flagged void")
	}
	if tokens[1].Void {
		t.Errorf("div flagged void")
	}
}

func TestLexLocations(t *testing.T) {
	tokens, _ := lex([]byte("a\n<b>\n  <c>"))

	expected := []Location{
		{Line: 1, Col: 1, Pos: 0},
		{Line: 2, Col: 1, Pos: 2},
		{Line: 2, Col: 4, Pos: 5},
		{Line: 3, Col: 3, Pos: 8},
	}
	got := make([]Location, len(tokens))
	for i, tok := range tokens {
		got[i] = tok.Loc
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("locations mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerIsNotRestartable(t *testing.T) {
	lx := newLexer([]byte("<p>x</p>"))
	count := 0
	for _, ok := lx.next(); ok; _, ok = lx.next() {
		count++
	}
	if count != 3 {
		t.Fatalf("got %d tokens, want 3", count)
	}
	if _, ok := lx.next(); ok {
		t.Errorf("exhausted lexer produced another token")
	}
}
