// Package parser implements the three parsing passes of the
// translator: line tokenization, block structuring, and inline
// parsing. Every pass works on offsets into an immutable input buffer
// and communicates through mdast token sequences.
package parser

import (
	"github.com/yaklabco/mdhtml/pkg/mdast"
	"github.com/yaklabco/mdhtml/pkg/refs"
)

// lineScanner is the first pass. It walks the buffer front to back,
// extracting fenced code blocks, raw HTML blocks, and reference-link
// definitions, and splitting everything else into BLANK and LINE
// tokens.
type lineScanner struct {
	src  []byte
	pos  int
	out  []mdast.Token
	dict *refs.Dict
}

// SplitLines scans src once. Reference definitions are filed into dict;
// the returned sequence holds Blank, Line, HTML, and Code/SPre/EPre
// line tokens in source order.
func SplitLines(src []byte, dict *refs.Dict) []mdast.Token {
	s := &lineScanner{src: src, dict: dict}
	for s.pos < len(s.src) {
		if s.tryFencedCode() {
			continue
		}
		if s.tryHTMLBlock() {
			continue
		}
		if s.tryRefDef() {
			continue
		}
		s.splitLine()
	}
	return s.out
}

func (s *lineScanner) emit(kind mdast.Kind, begin, end int) {
	s.out = append(s.out, mdast.Token{Kind: kind, Begin: begin, End: end})
}

// atBlockBoundary reports whether pos sits after two newlines (or close
// enough to the buffer start that fewer exist). Fenced code and HTML
// blocks only open at such boundaries.
func (s *lineScanner) atBlockBoundary() bool {
	if s.pos-2 >= 0 && s.src[s.pos-2] != '\n' {
		return false
	}
	if s.pos-1 >= 0 && s.src[s.pos-1] != '\n' {
		return false
	}
	return true
}

// checkBlockEnd matches the end of a raw block: optional spaces, a
// newline, then a blank line or end of input. Returns the position
// after the first newline on success, pos otherwise.
func checkBlockEnd(src []byte, pos, end int) int {
	p1 := scanRun(src, pos, end, 0, -1, isSpace)
	p2 := scanByteRun(src, p1, end, 1, 1, '\n')
	p3 := scanRun(src, p2, end, 0, -1, isSpace)
	p4 := scanByteRun(src, p3, end, 1, 1, '\n')
	if end <= p4 || (p1 < p2 && p3 < p4) {
		return p2
	}
	return pos
}

// tryFencedCode scans a ``` fence opened at a block boundary: three
// backticks, a discarded info string, and a closing three-backtick line
// followed by a blank line or end of input. The interior is emitted
// verbatim as one Code token between SPre and EPre.
func (s *lineScanner) tryFencedCode() bool {
	if !s.atBlockBoundary() {
		return false
	}
	end := len(s.src)
	p1 := scanByteRun(s.src, s.pos, end, 3, 3, '`')
	if p1 == s.pos {
		return false
	}
	p2 := scanRun(s.src, p1, end, 0, -1, isPrint)
	p3 := scanByteRun(s.src, p2, end, 1, 1, '\n')
	if p3 == p2 {
		return false
	}
	cbegin, cend := p3, p3
	fence := []byte("\n```")
	for p := p3; p < end; {
		p4 := search(s.src, p, end, fence)
		if p4 < 0 {
			return false
		}
		cend = p4
		p = p4 + len(fence)
		if p5 := checkBlockEnd(s.src, p, end); p5 >= end || p < p5 {
			s.emit(mdast.SPre, p1, p2)
			s.emit(mdast.Code, cbegin, cend)
			s.emit(mdast.EPre, cend, cend)
			s.pos = p5
			return true
		}
	}
	return false
}

// tryHTMLBlock scans a raw block-level HTML region opened at a block
// boundary by a recognized tag or comment. Self-closing tags, comments,
// and <hr> end at the next blank-line boundary; everything else needs
// the matching closing tag followed by one.
func (s *lineScanner) tryHTMLBlock() bool {
	if !s.atBlockBoundary() {
		return false
	}
	end := len(s.src)
	p1, tag := scanHTMLTag(s.src, s.pos, end)
	if p1 == s.pos || !blockTags[tag] {
		return false
	}
	if tag == "hr" || tag == commentTag || (p1-2 >= 0 && s.src[p1-2] == '/') {
		if p3 := checkBlockEnd(s.src, p1, end); p3 >= end || p1 < p3 {
			s.emit(mdast.HTML, s.pos, p3)
			s.pos = p3
			return true
		}
		return false
	}
	closing := append([]byte("</"), tag...)
	for p1 < end {
		p2 := search(s.src, p1, end, closing)
		if p2 < 0 {
			return false
		}
		p3 := scanRun(s.src, p2+len(closing), end, 0, -1, isWhite)
		p1 = scanByteRun(s.src, p3, end, 1, 1, '>')
		if p1 == p3 {
			return false
		}
		if p5 := checkBlockEnd(s.src, p1, end); p5 >= end || p1 < p5 {
			s.emit(mdast.HTML, s.pos, p5)
			s.pos = p5
			return true
		}
	}
	return false
}

// scanRefDefID scans "[id]:" plus at least one following space.
// Returns the position after the spaces and the normalized id.
func scanRefDefID(src []byte, pos, end int) (int, string) {
	p1 := scanMargin(src, pos, end)
	p2 := scanQuoted(src, p1, end, '[', ']', isPrint)
	if p1 < p2 && src[p1+1] == ']' {
		return pos, ""
	}
	p3 := scanByteRun(src, p2, end, 1, 1, ':')
	p4 := scanRun(src, p3, end, 1, -1, isSpace)
	if !(p1 < p2 && p2 < p3 && p3 < p4) {
		return pos, ""
	}
	return p4, refs.NormalizeLabel(src[p1+1 : p2-1])
}

// scanRefDefURI scans the destination, either <bracketed> or a bare
// graphic run.
func scanRefDefURI(src []byte, pos, end int) (int, string) {
	var p1, p2 int
	p3 := scanQuoted(src, pos, end, '<', '>', isPrint)
	if pos < p3 {
		p1, p2 = pos+1, p3-1
	} else {
		p3 = scanRun(src, pos, end, 1, -1, isGraph)
		p1, p2 = pos, p3
	}
	if p1 >= p2 {
		return pos, ""
	}
	return p3, string(src[p1:p2])
}

// scanRefDefTitle scans the optional title, on the same line or the
// next, delimited by matching quotes, backticks, or parentheses.
func scanRefDefTitle(src []byte, pos, end int) (int, string) {
	p1 := scanRun(src, pos, end, 0, -1, isSpace)
	p2 := scanByteRun(src, p1, end, 1, 1, '\n')
	if p1 < p2 {
		p2 = scanRun(src, p2, end, 0, -1, isSpace)
	}
	if pos < p2 && p2 < end {
		q := src[p2]
		if q == '"' || q == '\'' || q == '`' || q == '(' {
			if q == '(' {
				q = ')'
			}
			p4 := scanRun(src, p2, end, 0, -1, isPrint)
			p3 := rscanRun(src, p2, p4, isSpace)
			if p3-p2 > 2 && src[p3-1] == q {
				return p4, string(src[p2+1 : p3-1])
			}
		}
	}
	return pos, ""
}

// tryRefDef scans one reference-link definition line and files it into
// the dictionary. Identifiers beginning with '^' are reserved and
// rejected.
func (s *lineScanner) tryRefDef() bool {
	end := len(s.src)
	p1, id := scanRefDefID(s.src, s.pos, end)
	if p1 == s.pos || id == "" || id[0] == '^' {
		return false
	}
	p2, uri := scanRefDefURI(s.src, p1, end)
	if p2 == p1 {
		return false
	}
	p3, title := scanRefDefTitle(s.src, p2, end)
	p4 := scanRun(s.src, p3, end, 0, -1, isSpace)
	p5 := scanByteRun(s.src, p4, end, 1, 1, '\n')
	if p5 < end && p4 == p5 {
		return false
	}
	s.dict.Define(id, refs.Definition{URI: uri, Title: title})
	s.pos = p5
	return true
}

// splitLine emits one physical line: Blank when it holds only spaces
// and tabs, Line otherwise. The token end includes the terminating
// newline when present.
func (s *lineScanner) splitLine() {
	end := len(s.src)
	p1 := s.pos
	p2 := scanRun(s.src, p1, end, 0, -1, isSpace)
	p3 := scanRun(s.src, p2, end, 0, -1, func(c byte) bool { return c != '\n' })
	p4 := scanByteRun(s.src, p3, end, 1, 1, '\n')
	if p2 == p3 {
		s.emit(mdast.Blank, p3, p4)
	} else {
		s.emit(mdast.Line, p1, p4)
	}
	s.pos = p4
}
