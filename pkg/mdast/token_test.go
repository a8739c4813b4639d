package mdast_test

import (
	"testing"

	"github.com/yaklabco/mdhtml/pkg/mdast"
)

func TestKind_Literal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     mdast.Kind
		expected string
	}{
		{"hrule", mdast.HRule, "<hr />\n"},
		{"em start", mdast.SEm, "<em>"},
		{"em end", mdast.EEm, "</em>"},
		{"strong start", mdast.SStrong, "<strong>"},
		{"break", mdast.Break, "<br />\n"},
		{"pre start", mdast.SPre, "<pre><code>"},
		{"pre end", mdast.EPre, "</code></pre>\n"},
		{"h1 start", mdast.SHeading1, "<h1>"},
		{"h6 end", mdast.EHeading6, "</h6>\n"},
		{"blockquote start", mdast.SBlockquote, "<blockquote>\n"},
		{"list item end", mdast.ELItem, "</li>\n"},
		{"paragraph start", mdast.SParagraph, "<p>"},
		{"paragraph end", mdast.EParagraph, "</p>\n"},
		{"anchor begin", mdast.SABegin, `<a href="`},
		{"title glue", mdast.Title, `" title="`},
		{"image end", mdast.ImgEnd, `" />`},
		{"line has no literal", mdast.Line, ""},
		{"text has no literal", mdast.Text, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := testCase.kind.Literal(); got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestSHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    int
		expected mdast.Kind
	}{
		{1, mdast.SHeading1},
		{2, mdast.SHeading2},
		{3, mdast.SHeading3},
		{6, mdast.SHeading6},
		{0, mdast.SHeading1},
		{9, mdast.SHeading6},
	}

	for _, testCase := range tests {
		if got := mdast.SHeading(testCase.level); got != testCase.expected {
			t.Errorf("SHeading(%d) = %v, want %v", testCase.level, got, testCase.expected)
		}
	}
}

func TestEndOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start    mdast.Kind
		expected mdast.Kind
	}{
		{mdast.SPre, mdast.EPre},
		{mdast.SHeading1, mdast.EHeading1},
		{mdast.SHeading4, mdast.EHeading4},
		{mdast.SBlockquote, mdast.EBlockquote},
		{mdast.SUList, mdast.EUList},
		{mdast.SOList, mdast.EOList},
		{mdast.SLItem, mdast.ELItem},
		{mdast.SParagraph, mdast.EParagraph},
		{mdast.HRule, mdast.HRule},
	}

	for _, testCase := range tests {
		if got := mdast.EndOf(testCase.start); got != testCase.expected {
			t.Errorf("EndOf(%v) = %v, want %v", testCase.start, got, testCase.expected)
		}
	}
}

func TestToken_Slice(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")

	tests := []struct {
		name     string
		token    mdast.Token
		expected string
	}{
		{
			name:     "span",
			token:    mdast.Token{Kind: mdast.Text, Begin: 0, End: 5},
			expected: "hello",
		},
		{
			name:     "empty span",
			token:    mdast.Token{Kind: mdast.Text, Begin: 5, End: 5},
			expected: "",
		},
		{
			name:     "lit overrides span",
			token:    mdast.Token{Kind: mdast.URI, Begin: 0, End: 5, Lit: "http://e.x"},
			expected: "http://e.x",
		},
		{
			name:     "out of range",
			token:    mdast.Token{Kind: mdast.Text, Begin: 0, End: 100},
			expected: "",
		},
		{
			name:     "inverted",
			token:    mdast.Token{Kind: mdast.Text, Begin: 5, End: 3},
			expected: "",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := string(testCase.token.Slice(content))
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestToken_Len(t *testing.T) {
	t.Parallel()

	if got := (mdast.Token{Begin: 2, End: 7}).Len(); got != 5 {
		t.Errorf("Len = %d, want 5", got)
	}
	if got := (mdast.Token{Lit: "abc"}).Len(); got != 3 {
		t.Errorf("Len with Lit = %d, want 3", got)
	}
}

func TestValidateNesting(t *testing.T) {
	t.Parallel()

	mk := func(kinds ...mdast.Kind) []mdast.Token {
		tokens := make([]mdast.Token, len(kinds))
		for i, k := range kinds {
			tokens[i] = mdast.Token{Kind: k}
		}
		return tokens
	}

	tests := []struct {
		name   string
		tokens []mdast.Token
		valid  bool
	}{
		{"empty", nil, true},
		{"paragraph", mk(mdast.SParagraph, mdast.Inline, mdast.EParagraph), true},
		{
			"nested quote",
			mk(mdast.SBlockquote, mdast.SParagraph, mdast.Inline,
				mdast.EParagraph, mdast.EBlockquote),
			true,
		},
		{
			"list with items",
			mk(mdast.SUList, mdast.SLItem, mdast.Inline, mdast.ELItem,
				mdast.SLItem, mdast.Inline, mdast.ELItem, mdast.EUList),
			true,
		},
		{"hrule alone", mk(mdast.HRule), true},
		{"unclosed", mk(mdast.SParagraph, mdast.Inline), false},
		{"mismatched", mk(mdast.SParagraph, mdast.EBlockquote), false},
		{"crossed", mk(mdast.SUList, mdast.SLItem, mdast.EUList, mdast.ELItem), false},
		{"stray end", mk(mdast.EParagraph), false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := mdast.ValidateNesting(testCase.tokens); got != testCase.valid {
				t.Errorf("ValidateNesting = %v, want %v", got, testCase.valid)
			}
		})
	}
}

func TestValidateOffsets(t *testing.T) {
	t.Parallel()

	ok := []mdast.Token{{Begin: 0, End: 3}, {Begin: 3, End: 5}}
	if !mdast.ValidateOffsets(ok, 5) {
		t.Error("expected valid offsets")
	}

	bad := []mdast.Token{{Begin: 0, End: 6}}
	if mdast.ValidateOffsets(bad, 5) {
		t.Error("expected end past buffer to be invalid")
	}

	lit := []mdast.Token{{Begin: -1, End: 99, Lit: "x"}}
	if !mdast.ValidateOffsets(lit, 5) {
		t.Error("Lit tokens are exempt from offset checks")
	}
}
