// Package mdast defines the token model shared by every pass of the
// translator. A token is a classified span of the pass's input buffer;
// passes communicate exclusively through flat token sequences.
package mdast

// Kind classifies a token. The declaration order is significant:
// everything from Break onward has a literal HTML spelling, and
// everything from HRule onward is a block-level marker. Kinds below
// Break carry source content, except the link and image glue kinds
// (SABegin through ImgEnd), which also have literal spellings.
type Kind uint8

const (
	// Line tokens, produced by the line tokenizer.
	Blank Kind = iota
	Line
	HTML
	Code

	// Content tokens.
	Text
	Inline
	LinkID
	URI

	// Inline markup markers.
	SABegin
	Title
	SAEnd
	ImgBegin
	Alt
	ImgEnd
	Break
	SCode
	ECode
	EA
	SEm
	EEm
	SStrong
	EStrong

	// Block markup markers.
	HRule
	SPre
	EPre
	SHeading1
	EHeading1
	SHeading2
	EHeading2
	SHeading3
	EHeading3
	SHeading4
	EHeading4
	SHeading5
	EHeading5
	SHeading6
	EHeading6
	SBlockquote
	EBlockquote
	SUList
	EUList
	SOList
	EOList
	SLItem
	ELItem
	SParagraph
	EParagraph
)

// literals maps each marker kind to its HTML spelling. Kinds without a
// spelling (line and content tokens) map to the empty string; the
// attribute kinds Title and Alt double as the glue strings emitted
// between a link's or image's attribute values.
var literals = [...]string{
	SABegin:  `<a href="`,
	Title:    `" title="`,
	SAEnd:    `">`,
	ImgBegin: `<img src="`,
	Alt:      `" alt="`,
	ImgEnd:   `" />`,
	Break:    "<br />\n",
	SCode:    "<code>",
	ECode:    "</code>",
	EA:       "</a>",
	SEm:      "<em>",
	EEm:      "</em>",
	SStrong:  "<strong>",
	EStrong:  "</strong>",

	HRule:       "<hr />\n",
	SPre:        "<pre><code>",
	EPre:        "</code></pre>\n",
	SHeading1:   "<h1>",
	EHeading1:   "</h1>\n",
	SHeading2:   "<h2>",
	EHeading2:   "</h2>\n",
	SHeading3:   "<h3>",
	EHeading3:   "</h3>\n",
	SHeading4:   "<h4>",
	EHeading4:   "</h4>\n",
	SHeading5:   "<h5>",
	EHeading5:   "</h5>\n",
	SHeading6:   "<h6>",
	EHeading6:   "</h6>\n",
	SBlockquote: "<blockquote>\n",
	EBlockquote: "</blockquote>\n",
	SUList:      "<ul>\n",
	EUList:      "</ul>\n",
	SOList:      "<ol>\n",
	EOList:      "</ol>\n",
	SLItem:      "<li>",
	ELItem:      "</li>\n",
	SParagraph:  "<p>",
	EParagraph:  "</p>\n",
}

// Literal returns the HTML spelling of a marker kind, or "" for kinds
// that carry source content.
func (k Kind) Literal() string {
	if int(k) < len(literals) {
		return literals[k]
	}
	return ""
}

// IsBlockMarker reports whether k is a block-level markup marker.
func (k Kind) IsBlockMarker() bool {
	return k >= HRule
}

// IsInlineLiteral reports whether k is an inline marker printed by its
// literal spelling alone.
func (k Kind) IsInlineLiteral() bool {
	return k >= Break && k < HRule
}

// SHeading returns the start marker for a heading of the given level.
// Levels outside 1..6 are clamped.
func SHeading(level int) Kind {
	if level < 1 {
		level = 1
	} else if level > 6 {
		level = 6
	}
	return SHeading1 + Kind(2*(level-1))
}

// EndOf returns the end marker paired with a block start marker.
// Paired kinds are declared adjacently, so the end is always the
// successor. HRule has no pair and returns itself.
func EndOf(start Kind) Kind {
	if start == HRule || !start.IsBlockMarker() {
		return start
	}
	return start + 1
}

// Token is a classified span [Begin, End) of a pass's input buffer.
// When Lit is non-empty it overrides the span; reference-link
// resolution produces URI and Title tokens whose content lives in the
// dictionary rather than the input.
type Token struct {
	Kind  Kind
	Begin int
	End   int
	Lit   string
}

// Slice returns the token's content from src, honouring Lit.
func (t Token) Slice(src []byte) []byte {
	if t.Lit != "" {
		return []byte(t.Lit)
	}
	if t.Begin < 0 || t.End > len(src) || t.Begin > t.End {
		return nil
	}
	return src[t.Begin:t.End]
}

// Len returns the span length in bytes.
func (t Token) Len() int {
	if t.Lit != "" {
		return len(t.Lit)
	}
	return t.End - t.Begin
}

// isStartMarker reports whether k opens a block pair.
func isStartMarker(k Kind) bool {
	switch k {
	case SPre, SHeading1, SHeading2, SHeading3, SHeading4, SHeading5,
		SHeading6, SBlockquote, SUList, SOList, SLItem, SParagraph:
		return true
	}
	return false
}

// isEndMarker reports whether k closes a block pair.
func isEndMarker(k Kind) bool {
	switch k {
	case EPre, EHeading1, EHeading2, EHeading3, EHeading4, EHeading5,
		EHeading6, EBlockquote, EUList, EOList, ELItem, EParagraph:
		return true
	}
	return false
}

// ValidateNesting checks that block start markers in tokens pair with
// the matching end marker in depth-first order. Non-marker tokens are
// ignored.
func ValidateNesting(tokens []Token) bool {
	var stack []Kind
	for _, t := range tokens {
		switch {
		case isStartMarker(t.Kind):
			stack = append(stack, t.Kind)
		case isEndMarker(t.Kind):
			if len(stack) == 0 {
				return false
			}
			top := stack[len(stack)-1]
			if EndOf(top) != t.Kind {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// ValidateOffsets checks that every token's span lies within a buffer
// of length n and that Begin <= End.
func ValidateOffsets(tokens []Token, n int) bool {
	for _, t := range tokens {
		if t.Lit != "" {
			continue
		}
		if t.Begin < 0 || t.End > n || t.Begin > t.End {
			return false
		}
	}
	return true
}
