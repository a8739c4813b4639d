package parser

import (
	"bytes"

	"github.com/yaklabco/mdhtml/pkg/mdast"
	"github.com/yaklabco/mdhtml/pkg/refs"
)

// uriSchemes are the schemes recognized inside <...> auto-links.
var uriSchemes = [][]byte{
	[]byte("https://"),
	[]byte("http://"),
	[]byte("ftp://"),
	[]byte("ftps://"),
	[]byte("mailto:"),
}

// nestFrame is one pending construct on the inline parser's nest stack.
// pos indexes the pending start marker in the token sequence under
// construction; n encodes the construct: 0 an open link sentinel, 1 a
// pending <em>, 2 a pending <strong>, 3 one half of a combined
// triple-run whose split is decided on close.
type nestFrame struct {
	pos int
	n   int
}

// inlineParser is the third pass. It runs over one inline run and
// produces text fragments, emphasis markers, code spans, breaks,
// auto-links, links, and images.
type inlineParser struct {
	src  []byte
	dict *refs.Dict
	nest []nestFrame
}

// ParseInline parses one inline run against the reference dictionary.
// The returned tokens reference src; dictionary-resolved attributes
// carry their content in Lit.
func ParseInline(src []byte, dict *refs.Dict) []mdast.Token {
	p := &inlineParser{src: src, dict: dict}
	var out []mdast.Token
	pos := 0
	for pos < len(src) {
		next := p.loop(pos, len(src), &out)
		if next == pos && src[pos] == ']' {
			next = appendText(&out, pos, pos+1)
		}
		pos = next
	}
	// Unmatched start markers degrade to literal text.
	for len(p.nest) > 0 {
		out[p.nest[len(p.nest)-1].pos].Kind = mdast.Text
		p.nest = p.nest[:len(p.nest)-1]
	}
	return out
}

// appendText emits a Text token, coalescing with a preceding Text token
// whose span touches it.
func appendText(out *[]mdast.Token, begin, end int) int {
	if begin >= end {
		return end
	}
	if n := len(*out); n > 0 {
		last := &(*out)[n-1]
		if last.Kind == mdast.Text && last.Lit == "" && last.End == begin {
			last.End = end
			return end
		}
	}
	*out = append(*out, mdast.Token{Kind: mdast.Text, Begin: begin, End: end})
	return end
}

// loop dispatches on the current byte until end or an unconsumed ']',
// which belongs to an enclosing link attempt (or, at the outermost
// level, becomes plain text).
func (p *inlineParser) loop(pos, end int, out *[]mdast.Token) int {
	p1 := pos
	for p1 < end && p.src[p1] != ']' {
		switch p.src[p1] {
		case ' ':
			p1 = p.parseSpace(p1, end, out)
		case '\\':
			p1 = p.parseEscape(p1, end, out)
		case '`':
			p1 = p.parseCodeSpan(p1, end, out)
		case '*', '_':
			p1 = p.parseEmphasis(p1, end, out)
		case '<':
			p1 = p.parseAngle(p1, end, out)
		case '[':
			p1 = p.parseLink(p1, end, out)
		case '!':
			p1 = p.parseImage(p1, end, out)
		default:
			p2 := p1
			for p2 < end && !isInlineSpecial(p.src[p2]) {
				p2++
			}
			p1 = appendText(out, p1, p2)
		}
	}
	return p1
}

// isInlineSpecial reports whether c interrupts a plain text run.
func isInlineSpecial(c byte) bool {
	switch c {
	case ' ', '\\', '`', '*', '_', '<', '!', '[', ']':
		return true
	}
	return false
}

// parseSpace emits a hard Break for two or more spaces before a
// newline, plain text otherwise.
func (p *inlineParser) parseSpace(pos, end int, out *[]mdast.Token) int {
	p1 := scanByteRun(p.src, pos, end, 1, -1, ' ')
	p2 := scanByteRun(p.src, p1, end, 1, 1, '\n')
	if p1-pos >= 2 && p1 < p2 {
		*out = append(*out, mdast.Token{Kind: mdast.Break, Begin: pos, End: p2})
		return p2
	}
	return appendText(out, pos, p2)
}

// parseEscape emits a backslash pair as text; the unescape is deferred
// to the writer. A backslash before a non-escapable byte stands alone.
func (p *inlineParser) parseEscape(pos, end int, out *[]mdast.Token) int {
	if pos+1 < end && isEscapable(p.src[pos+1]) {
		return appendText(out, pos, pos+2)
	}
	return appendText(out, pos, pos+1)
}

// parseCodeSpan opens a span on a backtick run and closes it at the
// next run of the same length, trimming interior whitespace. An
// unmatched opener degrades to text.
func (p *inlineParser) parseCodeSpan(pos, end int, out *[]mdast.Token) int {
	p1 := scanByteRun(p.src, pos, end, 1, -1, '`')
	p2 := scanRun(p.src, p1, end, 0, -1, isWhite)
	n := p1 - pos
	p3 := search(p.src, p2, end, p.src[pos:p1])
	p4 := p3
	for p3 >= 0 {
		p4 = scanByteRun(p.src, p3, end, 1, -1, '`')
		if p4-p3 == n {
			break
		}
		p3 = search(p.src, p4, end, p.src[pos:p1])
	}
	if p3 < 0 {
		return appendText(out, pos, p2)
	}
	p3 = rscanRun(p.src, p2, p3, isWhite)
	*out = append(*out,
		mdast.Token{Kind: mdast.SCode, Begin: p2, End: p2},
		mdast.Token{Kind: mdast.Code, Begin: p2, End: p3},
		mdast.Token{Kind: mdast.ECode, Begin: p3, End: p3})
	return p4
}

// matchURI reports whether s begins with a recognized auto-link scheme.
func matchURI(s []byte) bool {
	for _, scheme := range uriSchemes {
		if bytes.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

// parseAngle tries an inline HTML tag, then an auto-link; otherwise the
// '<' run is plain text.
func (p *inlineParser) parseAngle(pos, end int, out *[]mdast.Token) int {
	if p1, _ := scanHTMLTag(p.src, pos, end); p1 > pos {
		*out = append(*out, mdast.Token{Kind: mdast.HTML, Begin: pos, End: p1})
		return p1
	}
	p2 := scanQuoted(p.src, pos, end, '<', '>', isPrint)
	if p2-pos > 2 && matchURI(p.src[pos+1:p2-1]) {
		*out = append(*out,
			mdast.Token{Kind: mdast.SABegin, Begin: pos, End: pos},
			mdast.Token{Kind: mdast.URI, Begin: pos + 1, End: p2 - 1},
			mdast.Token{Kind: mdast.SAEnd, Begin: p2, End: p2},
			mdast.Token{Kind: mdast.Text, Begin: pos + 1, End: p2 - 1},
			mdast.Token{Kind: mdast.EA, Begin: p2, End: p2})
		return p2
	}
	p3 := scanByteRun(p.src, pos, end, 1, -1, '<')
	return appendText(out, pos, p3)
}

// parseLinkParen scans the inline attribute form (uri "title"), where
// the uri may be <bracketed> and the title delimited by double or
// single quotes.
// Attribute tokens are appended to attr; returns the position after the
// closing ')', or pos.
func parseLinkParen(src []byte, pos, end int, attr *[]mdast.Token) int {
	p6 := scanQuoted(src, pos, end, '(', ')', isAny)
	if pos == p6 {
		return pos
	}
	p1 := pos + 1
	p5 := rscanRun(src, p1, p6-1, isWhite)
	p2 := p5
	if p1 < p5 && src[p1] == '<' {
		p2 = scanQuoted(src, p1, p5, '<', '>', isAny)
		if p2 == p1 {
			p2 = p1 + 1
		} else {
			p2--
		}
	} else {
		p2 = p1 + 1
	}
	p3, p4 := p5, p5
	if p5-1 >= p1 && (src[p5-1] == '"' || src[p5-1] == '\'') {
		qq := src[p5-1]
		p4 = findQuote(src, p2, p5, qq)
		for p4 < p5 && !isWhite(src[p4-1]) {
			p4 = findQuote(src, p4+1, p5, qq)
		}
		p3 = rscanRun(src, p2, p4, isWhite)
	}
	if p3-p1 > 1 && src[p1] == '<' && src[p3-1] == '>' {
		*attr = append(*attr, mdast.Token{Kind: mdast.URI, Begin: p1 + 1, End: p3 - 1})
	} else {
		*attr = append(*attr, mdast.Token{Kind: mdast.URI, Begin: p1, End: p3})
	}
	if p5-p4 > 1 && src[p4] == src[p5-1] && (src[p5-1] == '"' || src[p5-1] == '\'') {
		*attr = append(*attr, mdast.Token{Kind: mdast.Title, Begin: p4 + 1, End: p5 - 1})
	}
	return p6
}

// findQuote returns the index of the first qq in src[pos:end], or end.
func findQuote(src []byte, pos, end int, qq byte) int {
	for p := pos; p < end; p++ {
		if src[p] == qq {
			return p
		}
	}
	return end
}

// parseLinkBracket scans the reference form [id]; an empty or absent
// bracket reuses the alt span as the id.
func parseLinkBracket(src []byte, pos, end, altBegin, altEnd int, attr *[]mdast.Token) int {
	p1 := scanRun(src, pos, end, 0, -1, isWhite)
	p2 := scanQuoted(src, p1, end, '[', ']', isAny)
	if p2-p1 > 2 {
		*attr = append(*attr, mdast.Token{Kind: mdast.LinkID, Begin: p1 + 1, End: p2 - 1})
	} else {
		*attr = append(*attr, mdast.Token{Kind: mdast.LinkID, Begin: altBegin, End: altEnd})
	}
	return p2
}

// fetchReference resolves attr's LinkID against the dictionary,
// replacing it with URI and Title tokens carrying the stored values.
func (p *inlineParser) fetchReference(attr *[]mdast.Token) bool {
	if len(*attr) == 0 || (*attr)[0].Kind != mdast.LinkID {
		return false
	}
	id := refs.NormalizeLabel((*attr)[0].Slice(p.src))
	def, ok := p.dict.Lookup(id)
	if !ok {
		return false
	}
	*attr = (*attr)[:0]
	*attr = append(*attr, mdast.Token{Kind: mdast.URI, Lit: def.URI})
	if def.Title != "" {
		*attr = append(*attr, mdast.Token{Kind: mdast.Title, Lit: def.Title})
	}
	return true
}

// makeLink splices a resolved link into out.
func makeLink(begin, end int, inner, attr []mdast.Token, out *[]mdast.Token) int {
	*out = append(*out, mdast.Token{Kind: mdast.SABegin, Begin: begin, End: begin})
	*out = append(*out, attr...)
	*out = append(*out, mdast.Token{Kind: mdast.SAEnd, Begin: begin, End: begin})
	*out = append(*out, inner...)
	*out = append(*out, mdast.Token{Kind: mdast.EA, Begin: end, End: end})
	return end
}

// parseLink parses [inner](uri "title"), [inner][id], or [inner][].
// The inner content is parsed recursively behind a sentinel frame that
// forbids nested links; on failure the brackets degrade to text and the
// inner tokens are re-emitted.
func (p *inlineParser) parseLink(pos, end int, out *[]mdast.Token) int {
	var inner, attr []mdast.Token
	p.nest = append(p.nest, nestFrame{pos: len(*out), n: 0})
	p1 := pos + 1
	p2 := p.loop(p1, end, &inner)
	for p.nest[len(p.nest)-1].n != 0 {
		inner[p.nest[len(p.nest)-1].pos].Kind = mdast.Text
		p.nest = p.nest[:len(p.nest)-1]
	}
	p3 := scanByteRun(p.src, p2, end, 1, 1, ']')
	p.nest = p.nest[:len(p.nest)-1]
	already := p.nestExists(0)
	if p1 == p2 || p2 == p3 {
		return appendText(out, pos, p1)
	}
	p4 := parseLinkParen(p.src, p3, end, &attr)
	if !already && p3 < p4 {
		return makeLink(pos, p4, inner, attr, out)
	}
	p5 := parseLinkBracket(p.src, p3, end, p1, p2, &attr)
	if !already && p.fetchReference(&attr) {
		return makeLink(pos, p5, inner, attr, out)
	}
	appendText(out, pos, p1)
	p.loop(p1, p2, out)
	return appendText(out, p2, p5)
}

// makeImage splices a resolved image into out.
func makeImage(at int, inner, attr []mdast.Token, out *[]mdast.Token) int {
	*out = append(*out, mdast.Token{Kind: mdast.ImgBegin, Begin: at, End: at})
	*out = append(*out, attr...)
	*out = append(*out, inner...)
	*out = append(*out, mdast.Token{Kind: mdast.ImgEnd, Begin: at, End: at})
	return at
}

// parseImage parses ![alt](...) or ![alt][id]. The alt span is plain
// text, never inline-parsed. On any failure the '!' becomes text and
// the bracket is retried as a link.
func (p *inlineParser) parseImage(pos, end int, out *[]mdast.Token) int {
	p1 := pos + 1
	if p1 >= end || p.src[p1] != '[' {
		return appendText(out, pos, p1)
	}
	p3 := scanQuoted(p.src, p1, end, '[', ']', isAny)
	if p3 == p1 {
		return appendText(out, pos, p1)
	}
	inner := []mdast.Token{{Kind: mdast.Alt, Begin: p1 + 1, End: p3 - 1}}
	var attr []mdast.Token
	p4 := parseLinkParen(p.src, p3, end, &attr)
	if p3 < p4 {
		return makeImage(p4, inner, attr, out)
	}
	p5 := parseLinkBracket(p.src, p3, end, p1+1, p3-1, &attr)
	if p.fetchReference(&attr) {
		return makeImage(p5, inner, attr, out)
	}
	return appendText(out, pos, p1)
}
