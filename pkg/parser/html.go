package parser

// Raw HTML recognition shared by the line tokenizer (block-level HTML)
// and the inline parser (inline tags).

// commentTag is the pseudo tag name reported for <!-- ... --> comments.
const commentTag = "!COMMENT"

// blockTags are the tag names that open a raw block-level HTML region.
var blockTags = map[string]bool{
	"blockquote": true, "del": true, "div": true, "dl": true,
	"fieldset": true, "figure": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "iframe": true, "ins": true, "noscript": true,
	"math": true, "ol": true, "p": true, "pre": true, "script": true,
	"table": true, "ul": true, commentTag: true,
}

// scanHTMLComment scans <!-- ... --> and returns the position after the
// terminator plus the comment pseudo tag, or pos when not a comment.
func scanHTMLComment(src []byte, pos, end int) (int, string) {
	p1 := scanByteRun(src, pos, end, 1, 1, '<')
	p2 := scanByteRun(src, p1, end, 1, 1, '!')
	p3 := scanByteRun(src, p2, end, 2, 2, '-')
	if !(pos < p1 && p1 < p2 && p2 < p3) {
		return pos, ""
	}
	p4 := search(src, p3, end, []byte("-->"))
	if p4 < 0 {
		return pos, ""
	}
	return p4 + 3, commentTag
}

// scanHTMLAttr scans one attribute (whitespace, name, optional =value
// with double-, single-, backtick-quoted or unquoted value). Returns
// the position after the attribute, or pos when no attribute is found.
func scanHTMLAttr(src []byte, pos, end int) int {
	p1 := scanRun(src, pos, end, 1, -1, isWhite)
	p2 := scanRun(src, p1, end, 1, -1, isTagName)
	if !(pos < p1 && p1 < p2) {
		return pos
	}
	p3 := scanRun(src, p2, end, 0, -1, isWhite)
	p4 := scanByteRun(src, p3, end, 1, 1, '=')
	if p4 == p3 {
		return p2
	}
	p5 := scanRun(src, p4, end, 0, -1, isWhite)
	p6 := p5
	if p5 < end && (src[p5] == '"' || src[p5] == '\'' || src[p5] == '`') {
		p6 = scanQuoted(src, p5, end, src[p5], src[p5], isAny)
	} else {
		p6 = scanRun(src, p5, end, 1, -1, isAttrValue)
	}
	if p6 == p5 {
		return pos
	}
	return p6
}

// scanHTMLTag scans a tag (opening, closing, or self-closing) or a
// comment at pos. It returns the position after the tag and the tag
// name; closing tags report the name with a leading '/'. On failure it
// returns pos and "".
func scanHTMLTag(src []byte, pos, end int) (int, string) {
	if p, tag := scanHTMLComment(src, pos, end); p > pos {
		return p, tag
	}
	p1 := scanByteRun(src, pos, end, 1, 1, '<')
	p2 := scanByteRun(src, p1, end, 0, 1, '/')
	p3 := scanRun(src, p2, end, 1, -1, isTagName)
	if !(pos < p1 && p2 < p3) {
		return pos, ""
	}
	name := string(src[p1:p3])
	p4 := p3
	for p4 < end {
		p5 := scanHTMLAttr(src, p4, end)
		if p5 == p4 {
			break
		}
		p4 = p5
	}
	p6 := scanRun(src, p4, end, 0, -1, isWhite)
	p7 := scanByteRun(src, p6, end, 0, 1, '/')
	p8 := scanByteRun(src, p7, end, 1, 1, '>')
	if p8 == p7 {
		return pos, ""
	}
	return p8, name
}
