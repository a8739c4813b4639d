package parser

import "github.com/yaklabco/mdhtml/pkg/mdast"

// The block pass consumes the line-token sequence and brackets blocks
// with paired start/end markers, leaving unparsed content as Inline
// tokens for the third pass. Block quotes and lists collect a
// transformed sub-sequence and recurse.

// ParseBlocks structures lines into bracketed blocks.
func ParseBlocks(src []byte, lines []mdast.Token) []mdast.Token {
	var out []mdast.Token
	parseBlockSeq(src, lines, &out)
	return out
}

func parseBlockSeq(src []byte, lines []mdast.Token, out *[]mdast.Token) {
	listitem := false
	for dot := 0; dot < len(lines); {
		line := dot
		if lines[dot].Kind == mdast.SLItem {
			listitem = true
		}
		if lines[dot].Kind == mdast.Line {
			if dot = parseHRule(src, lines, line, out); dot != line {
				continue
			}
			if dot = parseIndentedCode(src, lines, line, out); dot != line {
				continue
			}
			if dot = parseBlockquote(src, lines, line, out); dot != line {
				continue
			}
			if dot = parseATXHeading(src, lines, line, out); dot != line {
				continue
			}
			if dot = parseList(src, lines, line, out); dot != line {
				continue
			}
			if dot = parseSetextHeading(src, lines, line, out); dot != line {
				continue
			}
			if listitem {
				dot = parseListItemBody(src, lines, line, out)
			} else {
				dot = parseParagraph(src, lines, line, out)
			}
			listitem = false
		}
		if line == dot {
			*out = append(*out, lines[dot])
			dot++
		}
	}
}

// skipBlank returns the index of the first non-Blank token at or after
// dot.
func skipBlank(lines []mdast.Token, dot int) int {
	for dot < len(lines) && lines[dot].Kind == mdast.Blank {
		dot++
	}
	return dot
}

// endOffset returns a safe zero-width anchor for markers emitted at
// line index dot, which may be one past the last line.
func endOffset(src []byte, lines []mdast.Token, dot int) int {
	if dot < len(lines) {
		return lines[dot].Begin
	}
	return len(src)
}

// scanHRule matches a horizontal rule: after the margin, three or more
// of the same '*', '_', or '-' separated by optional spaces, to end of
// line.
func scanHRule(src []byte, pos, end int) int {
	p1 := scanMargin(src, pos, end)
	if !(p1 < end && (src[p1] == '*' || src[p1] == '_' || src[p1] == '-')) {
		return pos
	}
	dash := src[p1]
	n := 0
	for p1 < end && (isSpace(src[p1]) || src[p1] == dash) {
		if src[p1] == dash {
			n++
		}
		p1++
	}
	if n < 3 || !(p1 >= end || src[p1] == '\n') {
		return pos
	}
	return p1
}

// scanListMark matches a list marker: a bullet ('*', '+', '-') or a
// digit run plus '.', each followed by a space. Returns the position
// after the marker character (before the space), or pos.
func scanListMark(src []byte, pos, end int) int {
	p1 := scanMargin(src, pos, end)
	if p1 >= end {
		return pos
	}
	switch {
	case src[p1] == '*' || src[p1] == '+' || src[p1] == '-':
		p2 := p1 + 1
		if scanRun(src, p2, end, 1, 1, isSpace) > p2 {
			return p2
		}
	case isDigit(src[p1]):
		p2 := scanRun(src, p1, end, 1, -1, isDigit)
		p3 := scanByteRun(src, p2, end, 1, 1, '.')
		p4 := scanRun(src, p3, end, 1, 1, isSpace)
		if p2 < p3 && p3 < p4 {
			return p3
		}
	}
	return pos
}

func parseHRule(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	if scanHRule(src, t.Begin, t.End) == t.Begin {
		return dot
	}
	*out = append(*out, mdast.Token{Kind: mdast.HRule, Begin: t.Begin, End: t.End})
	return dot + 1
}

func parseSetextHeading(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	if dot+1 >= len(lines) || lines[dot+1].Kind != mdast.Line {
		return dot
	}
	t, u := lines[dot], lines[dot+1]
	p1 := scanMargin(src, t.Begin, t.End)
	if !(p1 < t.End && isGraph(src[p1])) {
		return dot
	}
	p2 := scanMargin(src, u.Begin, u.End)
	if !(p2 < u.End && (src[p2] == '=' || src[p2] == '-')) {
		return dot
	}
	dash := src[p2]
	p3 := scanByteRun(src, p2, u.End, 0, -1, dash)
	p4 := scanRun(src, p3, u.End, 0, -1, isSpace)
	if !(p4 >= u.End || src[p4] == '\n') {
		return dot
	}
	stag, etag := mdast.SHeading2, mdast.EHeading2
	if dash == '=' {
		stag, etag = mdast.SHeading1, mdast.EHeading1
	}
	*out = append(*out,
		mdast.Token{Kind: stag, Begin: p1, End: p1},
		mdast.Token{Kind: mdast.Inline, Begin: p1, End: t.End},
		mdast.Token{Kind: etag, Begin: t.End, End: t.End})
	return dot + 2
}

func parseATXHeading(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanMargin(src, t.Begin, t.End)
	p2 := scanByteRun(src, p1, t.End, 1, -1, '#')
	if p2 == p1 {
		return dot
	}
	n := p2 - p1
	if n > 6 {
		n = 6
	}
	p3 := scanRun(src, p2, t.End, 0, -1, isSpace)
	p4 := t.End
	p4 = rscanRun(src, p3, p4, isWhite)
	p4 = rscanByte(src, p3, p4, '#')
	p4 = rscanRun(src, p3, p4, isSpace)
	if p3 == p4 {
		return dot
	}
	*out = append(*out,
		mdast.Token{Kind: mdast.SHeading(n), Begin: p3, End: p3},
		mdast.Token{Kind: mdast.Inline, Begin: p3, End: p4},
		mdast.Token{Kind: mdast.EndOf(mdast.SHeading(n)), Begin: p4, End: p4})
	return dot + 1
}

// parseListItemBody emits the bare Inline lines of a list-item
// continuation, without a paragraph wrapper. It stops at the next line
// carrying a list marker.
func parseListItemBody(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanMargin(src, t.Begin, t.End)
	if !(p1 < t.End && isGraph(src[p1])) {
		return dot
	}
	*out = append(*out, mdast.Token{Kind: mdast.Inline, Begin: p1, End: t.End})
	d := dot + 1
	for ; d < len(lines) && lines[d].Kind == mdast.Line; d++ {
		u := lines[d]
		if scanListMark(src, u.Begin, u.End) != u.Begin {
			break
		}
		*out = append(*out, mdast.Token{Kind: mdast.Inline, Begin: u.Begin, End: u.End})
	}
	return d
}

func parseParagraph(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanMargin(src, t.Begin, t.End)
	if !(p1 < t.End && isGraph(src[p1])) {
		return dot
	}
	*out = append(*out,
		mdast.Token{Kind: mdast.SParagraph, Begin: p1, End: p1},
		mdast.Token{Kind: mdast.Inline, Begin: p1, End: t.End})
	d := dot + 1
	for ; d < len(lines) && lines[d].Kind == mdast.Line; d++ {
		*out = append(*out, mdast.Token{Kind: mdast.Inline, Begin: lines[d].Begin, End: lines[d].End})
	}
	anchor := endOffset(src, lines, d)
	*out = append(*out, mdast.Token{Kind: mdast.EParagraph, Begin: anchor, End: anchor})
	return d
}

// parseIndentedCodeLine consumes one indented line inside a code block.
func parseIndentedCodeLine(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p := scanIndent(src, t.Begin, t.End)
	if p == t.Begin {
		return dot
	}
	*out = append(*out, mdast.Token{Kind: mdast.Code, Begin: p, End: t.End})
	return dot + 1
}

// parseIndentedCodeBlank folds blank lines into the code block, but
// only when a later line resumes the indentation.
func parseIndentedCodeBlank(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	d := skipBlank(lines, dot)
	if !(d < len(lines) && lines[d].Kind == mdast.Line) {
		return dot
	}
	u := lines[d]
	if scanIndent(src, u.Begin, u.End) == u.Begin {
		return dot
	}
	for i := dot; i < d; i++ {
		*out = append(*out, mdast.Token{Kind: mdast.Code, Begin: lines[i].Begin, End: lines[i].End})
	}
	return d
}

func parseIndentedCode(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanIndent(src, t.Begin, t.End)
	if p1 == t.Begin {
		return dot
	}
	*out = append(*out,
		mdast.Token{Kind: mdast.SPre, Begin: p1, End: p1},
		mdast.Token{Kind: mdast.Code, Begin: p1, End: t.End})
	d := dot + 1
	for d < len(lines) {
		next := d
		switch lines[d].Kind {
		case mdast.Line:
			next = parseIndentedCodeLine(src, lines, d, out)
		case mdast.Blank:
			next = parseIndentedCodeBlank(src, lines, d, out)
		}
		if next == d {
			break
		}
		d = next
	}
	anchor := endOffset(src, lines, d)
	*out = append(*out, mdast.Token{Kind: mdast.EPre, Begin: anchor, End: anchor})
	return d
}

// parseBlockquoteLine strips one '>' and one optional space from a
// quoted line. A prefixed line directly after a lazy (unprefixed) one
// gets a separating Blank so the inner parse starts a new paragraph.
func parseBlockquoteLine(src []byte, lines []mdast.Token, dot int, block *[]mdast.Token, lazy *bool) int {
	t := lines[dot]
	p1 := scanMargin(src, t.Begin, t.End)
	p2 := scanByteRun(src, p1, t.End, 0, 1, '>')
	p3 := scanByteRun(src, p2, t.End, 0, 1, ' ')
	p4 := scanRun(src, p3, t.End, 0, -1, isSpace)
	if p4 >= t.End || src[p4] == '\n' {
		*block = append(*block, mdast.Token{Kind: mdast.Blank, Begin: p4, End: t.End})
	} else {
		if *lazy && p1 != p2 {
			*block = append(*block, mdast.Token{Kind: mdast.Blank, Begin: p3, End: p3})
		}
		*block = append(*block, mdast.Token{Kind: mdast.Line, Begin: p3, End: t.End})
	}
	*lazy = p1 == p2
	return dot + 1
}

// parseBlockquoteBlank continues the quote across blank lines only when
// the next line is prefixed again.
func parseBlockquoteBlank(src []byte, lines []mdast.Token, dot int, block *[]mdast.Token, lazy *bool) int {
	d := skipBlank(lines, dot)
	if !(d < len(lines) && lines[d].Kind == mdast.Line) {
		return dot
	}
	u := lines[d]
	p1 := scanMargin(src, u.Begin, u.End)
	p2 := scanByteRun(src, p1, u.End, 1, 1, '>')
	if p1 == p2 {
		return dot
	}
	for i := dot; i < d; i++ {
		*block = append(*block, lines[i])
	}
	*lazy = false
	return d
}

func parseBlockquote(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanMargin(src, t.Begin, t.End)
	p2 := scanByteRun(src, p1, t.End, 1, 1, '>')
	if p1 == p2 {
		return dot
	}
	block := []mdast.Token{{Kind: mdast.SBlockquote, Begin: p2, End: p2}}
	d := dot
	lazy := false
	for d < len(lines) {
		next := d
		switch lines[d].Kind {
		case mdast.Line:
			next = parseBlockquoteLine(src, lines, d, &block, &lazy)
		case mdast.Blank:
			next = parseBlockquoteBlank(src, lines, d, &block, &lazy)
		}
		if next == d {
			break
		}
		d = next
	}
	anchor := endOffset(src, lines, d)
	block = append(block, mdast.Token{Kind: mdast.EBlockquote, Begin: anchor, End: anchor})
	parseBlockSeq(src, block, out)
	return d
}

// parseListLine handles one line inside a list: a marker opens the next
// item, anything else joins the current one with one indentation level
// stripped.
func parseListLine(src []byte, lines []mdast.Token, dot int, block *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanListMark(src, t.Begin, t.End)
	if p1 == t.Begin {
		p2 := scanIndent(src, t.Begin, t.End)
		*block = append(*block, mdast.Token{Kind: mdast.Line, Begin: p2, End: t.End})
	} else {
		p2 := scanRun(src, p1, t.End, 1, -1, isSpace)
		*block = append(*block,
			mdast.Token{Kind: mdast.ELItem, Begin: p2, End: p2},
			mdast.Token{Kind: mdast.SLItem, Begin: p2, End: p2},
			mdast.Token{Kind: mdast.Line, Begin: p2, End: t.End})
	}
	return dot + 1
}

// parseListBlank absorbs blank lines inside a list. The list survives
// when the following line is indented (blanks are kept, making the item
// loose) or carries a new marker (blanks are dropped, keeping items
// tight); a horizontal rule or an unindented marker-less line ends it.
func parseListBlank(src []byte, lines []mdast.Token, dot int, block *[]mdast.Token) int {
	d := skipBlank(lines, dot)
	if !(d < len(lines) && lines[d].Kind == mdast.Line) {
		return dot
	}
	u := lines[d]
	if scanHRule(src, u.Begin, u.End) != u.Begin {
		return dot
	}
	p2 := scanListMark(src, u.Begin, u.End)
	p3 := scanIndent(src, u.Begin, u.End)
	if p3 != u.Begin {
		for i := dot; i < d; i++ {
			*block = append(*block, lines[i])
		}
	} else if p2 == u.Begin {
		return dot
	}
	return d
}

func parseList(src []byte, lines []mdast.Token, dot int, out *[]mdast.Token) int {
	t := lines[dot]
	p1 := scanListMark(src, t.Begin, t.End)
	if p1 == t.Begin {
		return dot
	}
	stag, etag := mdast.SUList, mdast.EUList
	if src[p1-1] == '.' {
		stag, etag = mdast.SOList, mdast.EOList
	}
	p2 := scanRun(src, p1, t.End, 1, -1, isSpace)
	block := []mdast.Token{
		{Kind: stag, Begin: p2, End: p2},
		{Kind: mdast.SLItem, Begin: p2, End: p2},
		{Kind: mdast.Line, Begin: p2, End: t.End},
	}
	d := dot + 1
	for d < len(lines) {
		next := d
		switch lines[d].Kind {
		case mdast.Line:
			next = parseListLine(src, lines, d, &block)
		case mdast.Blank:
			next = parseListBlank(src, lines, d, &block)
		}
		if next == d {
			break
		}
		d = next
	}
	anchor := endOffset(src, lines, d)
	block = append(block,
		mdast.Token{Kind: mdast.ELItem, Begin: anchor, End: anchor},
		mdast.Token{Kind: etag, Begin: anchor, End: anchor})
	parseBlockSeq(src, block, out)
	return d
}
