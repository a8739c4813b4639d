package parser_test

import (
	"testing"

	"github.com/yaklabco/mdhtml/pkg/mdast"
	"github.com/yaklabco/mdhtml/pkg/parser"
	"github.com/yaklabco/mdhtml/pkg/refs"
)

func parseInline(t *testing.T, input string, dict *refs.Dict) []mdast.Token {
	t.Helper()
	if dict == nil {
		dict = refs.NewDict()
	}
	tokens := parser.ParseInline([]byte(input), dict)
	if !mdast.ValidateOffsets(tokens, len(input)) {
		t.Fatalf("tokens carry offsets outside the buffer: %v", tokens)
	}
	return tokens
}

func TestParseInline_PlainText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "hello world", nil)
	assertKinds(t, tokens, mdast.Text)
	if got := string(tokens[0].Slice([]byte("hello world"))); got != "hello world" {
		t.Errorf("text = %q", got)
	}
}

func TestParseInline_Emphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []mdast.Kind
	}{
		{"em star", "*a*", []mdast.Kind{mdast.SEm, mdast.Text, mdast.EEm}},
		{"em underscore", "_a_", []mdast.Kind{mdast.SEm, mdast.Text, mdast.EEm}},
		{"strong", "**a**", []mdast.Kind{mdast.SStrong, mdast.Text, mdast.EStrong}},
		{
			"strong em combined",
			"***a***",
			[]mdast.Kind{mdast.SStrong, mdast.SEm, mdast.Text, mdast.EEm, mdast.EStrong},
		},
		{
			"nested strong in em",
			"*a **b** c*",
			[]mdast.Kind{mdast.SEm, mdast.Text, mdast.SStrong, mdast.Text,
				mdast.EStrong, mdast.Text, mdast.EEm},
		},
		{
			"triple split by single close",
			"***a* b**",
			[]mdast.Kind{mdast.SStrong, mdast.SEm, mdast.Text, mdast.EEm,
				mdast.Text, mdast.EStrong},
		},
		{
			"triple split by double close",
			"***a** b*",
			[]mdast.Kind{mdast.SEm, mdast.SStrong, mdast.Text, mdast.EStrong,
				mdast.Text, mdast.EEm},
		},
		{"run of four is text", "****a", []mdast.Kind{mdast.Text}},
		{"isolated run is text", "a * b", []mdast.Kind{mdast.Text}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens := parseInline(t, testCase.input, nil)
			assertKinds(t, tokens, testCase.expected...)
		})
	}
}

func TestParseInline_EmphasisOpenerMustMatchCloser(t *testing.T) {
	t.Parallel()

	// '*' opened, '_' close attempt: everything degrades to text.
	tokens := parseInline(t, "*a_", nil)
	for _, tok := range tokens {
		if tok.Kind != mdast.Text {
			t.Fatalf("expected only text tokens, got %v", kindsOf(tokens))
		}
	}
}

func TestParseInline_UnmatchedEmphasisDemoted(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "*abc", nil)
	for _, tok := range tokens {
		if tok.Kind == mdast.SEm || tok.Kind == mdast.EEm {
			t.Fatalf("unmatched marker survived: %v", kindsOf(tokens))
		}
	}
}

func TestParseInline_CodeSpan(t *testing.T) {
	t.Parallel()

	src := "`a`"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens, mdast.SCode, mdast.Code, mdast.ECode)
	if got := string(tokens[1].Slice([]byte(src))); got != "a" {
		t.Errorf("code = %q", got)
	}
}

func TestParseInline_CodeSpanDoubleBacktick(t *testing.T) {
	t.Parallel()

	src := "``literal ` backtick``"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens, mdast.SCode, mdast.Code, mdast.ECode)
	if got := string(tokens[1].Slice([]byte(src))); got != "literal ` backtick" {
		t.Errorf("code = %q", got)
	}
}

func TestParseInline_CodeSpanTrimsWhitespace(t *testing.T) {
	t.Parallel()

	src := "` a `"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens, mdast.SCode, mdast.Code, mdast.ECode)
	if got := string(tokens[1].Slice([]byte(src))); got != "a" {
		t.Errorf("code = %q", got)
	}
}

func TestParseInline_UnmatchedBacktickIsText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "`a", nil)
	assertKinds(t, tokens, mdast.Text)
}

func TestParseInline_HardBreak(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "a  \nb", nil)
	assertKinds(t, tokens, mdast.Text, mdast.Break, mdast.Text)
}

func TestParseInline_SingleSpaceNewlineIsText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "a \nb", nil)
	for _, tok := range tokens {
		if tok.Kind == mdast.Break {
			t.Fatal("single space must not form a hard break")
		}
	}
}

func TestParseInline_Escape(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, `\*not\*`, nil)
	assertKinds(t, tokens, mdast.Text)
}

func TestParseInline_AutoLink(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"<http://e.x/>",
		"<https://e.x>",
		"<ftp://e.x>",
		"<mailto:a@e.x>",
	} {
		tokens := parseInline(t, src, nil)
		assertKinds(t, tokens,
			mdast.SABegin, mdast.URI, mdast.SAEnd, mdast.Text, mdast.EA)
	}
}

func TestParseInline_AngleWithoutSchemeIsText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "< no tag >", nil)
	for _, tok := range tokens {
		if tok.Kind != mdast.Text {
			t.Fatalf("expected only text, got %v", kindsOf(tokens))
		}
	}
}

func TestParseInline_InlineHTMLTag(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, `a <b class="x">bold</b>`, nil)
	var html int
	for _, tok := range tokens {
		if tok.Kind == mdast.HTML {
			html++
		}
	}
	if html != 2 {
		t.Fatalf("expected 2 HTML tokens (open and close tag), got %v", kindsOf(tokens))
	}
}

func TestParseInline_InlineLink(t *testing.T) {
	t.Parallel()

	src := "[x](http://e.x)"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens,
		mdast.SABegin, mdast.URI, mdast.SAEnd, mdast.Text, mdast.EA)
	if got := string(tokens[1].Slice([]byte(src))); got != "http://e.x" {
		t.Errorf("uri = %q", got)
	}
}

func TestParseInline_InlineLinkWithTitle(t *testing.T) {
	t.Parallel()

	src := `[x](http://e.x "T")`
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens,
		mdast.SABegin, mdast.URI, mdast.Title, mdast.SAEnd, mdast.Text, mdast.EA)
	if got := string(tokens[2].Slice([]byte(src))); got != "T" {
		t.Errorf("title = %q", got)
	}
}

func TestParseInline_InlineLinkBracketedURI(t *testing.T) {
	t.Parallel()

	src := "[x](<http://e.x>)"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens,
		mdast.SABegin, mdast.URI, mdast.SAEnd, mdast.Text, mdast.EA)
	if got := string(tokens[1].Slice([]byte(src))); got != "http://e.x" {
		t.Errorf("uri = %q", got)
	}
}

func TestParseInline_ReferenceLink(t *testing.T) {
	t.Parallel()

	dict := refs.NewDict()
	dict.Define("ex", refs.Definition{URI: "http://e.x", Title: "t"})

	tokens := parseInline(t, "[x][ex]", dict)
	assertKinds(t, tokens,
		mdast.SABegin, mdast.URI, mdast.Title, mdast.SAEnd, mdast.Text, mdast.EA)
	if tokens[1].Lit != "http://e.x" {
		t.Errorf("uri lit = %q", tokens[1].Lit)
	}
	if tokens[2].Lit != "t" {
		t.Errorf("title lit = %q", tokens[2].Lit)
	}
}

func TestParseInline_CollapsedReferenceLink(t *testing.T) {
	t.Parallel()

	dict := refs.NewDict()
	dict.Define("ex", refs.Definition{URI: "http://e.x"})

	tokens := parseInline(t, "[ex][]", dict)
	assertKinds(t, tokens,
		mdast.SABegin, mdast.URI, mdast.SAEnd, mdast.Text, mdast.EA)
}

func TestParseInline_UnresolvedReferenceIsText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "[x][nope]", nil)
	for _, tok := range tokens {
		if tok.Kind != mdast.Text {
			t.Fatalf("expected only text, got %v", kindsOf(tokens))
		}
	}
}

func TestParseInline_Image(t *testing.T) {
	t.Parallel()

	src := "![alt](http://e.x/i.png)"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens, mdast.ImgBegin, mdast.URI, mdast.Alt, mdast.ImgEnd)
	if got := string(tokens[2].Slice([]byte(src))); got != "alt" {
		t.Errorf("alt = %q", got)
	}
}

func TestParseInline_ReferenceImage(t *testing.T) {
	t.Parallel()

	dict := refs.NewDict()
	dict.Define("pic", refs.Definition{URI: "/i.png"})

	tokens := parseInline(t, "![alt][pic]", dict)
	assertKinds(t, tokens, mdast.ImgBegin, mdast.URI, mdast.Alt, mdast.ImgEnd)
}

func TestParseInline_BangWithoutBracketIsText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "hey!", nil)
	assertKinds(t, tokens, mdast.Text)
	if got := string(tokens[0].Slice([]byte("hey!"))); got != "hey!" {
		t.Errorf("text = %q", got)
	}
}

func TestParseInline_StrayCloseBracketIsText(t *testing.T) {
	t.Parallel()

	tokens := parseInline(t, "]x", nil)
	assertKinds(t, tokens, mdast.Text)
}

func TestParseInline_EmphasisInsideLink(t *testing.T) {
	t.Parallel()

	src := "[*x*](u)"
	tokens := parseInline(t, src, nil)
	assertKinds(t, tokens,
		mdast.SABegin, mdast.URI, mdast.SAEnd,
		mdast.SEm, mdast.Text, mdast.EEm,
		mdast.EA)
}
