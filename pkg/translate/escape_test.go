package translate

import (
	"strings"
	"testing"
)

func renderWith(fn func(*strings.Builder, []byte), s string) string {
	var sb strings.Builder
	fn(&sb, []byte(s))
	return sb.String()
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "abc", "abc"},
		{"angle brackets", "<b>", "&lt;b&gt;"},
		{"quotes", `"a" 'b'`, "&quot;a&quot; &#39;b&#39;"},
		{"bare ampersand", "a & b", "a &amp; b"},
		{"named entity preserved", "a &amp; b", "a &amp; b"},
		{"decimal entity preserved", "&#169;", "&#169;"},
		{"hex entity preserved", "&#x27AE;", "&#x27AE;"},
		{"unterminated entity escaped", "&amp", "&amp;amp"},
		{"empty entity escaped", "&;", "&amp;;"},
		{"hash without digits escaped", "&#;", "&amp;#;"},
		{"trailing ampersand", "a&", "a&amp;"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := renderWith(escapeText, testCase.input)
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestEscapeAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "abc", "abc"},
		{"entity not preserved", "&amp;", "&amp;amp;"},
		{"all specials", `<>&"'`, "&lt;&gt;&amp;&quot;&#39;"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := renderWith(escapeAll, testCase.input)
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestEscapeURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"safe characters kept", "http://e.x/a-b_c.d,e:f;g*h+i=(j)/~k?l#m", "http://e.x/a-b_c.d,e:f;g*h+i=(j)/~k?l#m"},
		{"space encoded", "/a b", "/a%20b"},
		{"percent triplet kept", "/a%2Fb", "/a%2Fb"},
		{"lone percent encoded", "100%", "100%25"},
		{"bare ampersand", "?a&b", "?a&amp;b"},
		{"amp entity kept", "?a&amp;b", "?a&amp;b"},
		{"multibyte encoded", "/é", "/%C3%A9"},
		{"quotes encoded", `/"x"`, "/%22x%22"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := renderWith(escapeURI, testCase.input)
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestUnescapeBackslash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no escapes", "abc", "abc"},
		{"escaped star", `a\*b`, "a*b"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"escaped brackets", `\[x\]`, "[x]"},
		{"non-escapable kept", `a\qb`, `a\qb`},
		{"trailing backslash kept", `a\`, `a\`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := string(unescapeBackslash([]byte(testCase.input)))
			if got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestEntityEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		end   int
	}{
		{"named", "&amp;", 5},
		{"named with digits", "&frac12;", 8},
		{"decimal", "&#42;", 5},
		{"hex lower x", "&#x2F;", 6},
		{"hex digits only", "&#xAbCd;", 8},
		{"upper X rejected", "&#X2F;", -1},
		{"digit first rejected", "&1a;", -1},
		{"unterminated", "&amp", -1},
		{"empty numeric", "&#;", -1},
		{"empty hex", "&#x;", -1},
		{"lone amp", "&", -1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := entityEnd([]byte(testCase.input), 0)
			if got != testCase.end {
				t.Errorf("entityEnd(%q) = %d, want %d", testCase.input, got, testCase.end)
			}
		})
	}
}
