package parser

import "github.com/yaklabco/mdhtml/pkg/mdast"

// Emphasis pairing. A run of one to three identical '*' or '_' bytes
// either opens a frame on the nest stack, closes the top frame, or
// degrades to text. A triple run opens <strong><em> as two frames of
// kind 3 whose split is decided when one half closes.

// nestExists reports whether a frame satisfying query n is open
// anywhere on the stack: 0 matches an open link, 1 matches a pending
// <em> (or a combined frame), 2 a pending <strong> (or combined), and
// 3 any pending emphasis at all.
func (p *inlineParser) nestExists(n int) bool {
	for _, f := range p.nest {
		switch {
		case n == 0 && f.n == 0:
			return true
		case n == 1 && (f.n == 1 || f.n == 3):
			return true
		case n == 2 && (f.n == 2 || f.n == 3):
			return true
		case n == 3 && (f.n == 1 || f.n == 2 || f.n == 3):
			return true
		}
	}
	return false
}

// parseEmphasis classifies one emphasis run. leftwhite/rightwhite
// follow the whitespace rules of the dialect: a run flanked by
// whitespace on both sides, or longer than three, is plain text. A
// trailing '.', ',', ';', or ':' before whitespace still counts as a
// white right flank.
func (p *inlineParser) parseEmphasis(pos, end int, out *[]mdast.Token) int {
	p1 := scanByteRun(p.src, pos, end, 1, -1, p.src[pos])
	n := p1 - pos
	leftwhite := pos == 0 || isWhite(p.src[pos-1])
	rightwhite := p1 == end || isWhite(p.src[p1]) ||
		(isCloserPunct(p.src[p1]) && (p1+1 == end || isWhite(p.src[p1+1])))
	switch {
	case n > 3 || (leftwhite && rightwhite):
		return appendText(out, pos, p1)
	case n == 3:
		p.pairTriple(pos, p1, leftwhite, rightwhite, out)
	default:
		p.pairRun(pos, p1, leftwhite, rightwhite, out)
	}
	return p1
}

func isCloserPunct(c byte) bool {
	return c == '.' || c == ',' || c == ';' || c == ':'
}

// pairRun handles runs of length one or two. Closing a combined frame
// with a shorter run splits it: the pending start marker is rewritten
// to the two real starts and the unmatched half stays on the stack.
func (p *inlineParser) pairRun(begin, end int, leftwhite, rightwhite bool, out *[]mdast.Token) {
	n1 := end - begin
	n2 := 3 - n1
	sem1, eem1 := mdast.SEm, mdast.EEm
	if n1 == 2 {
		sem1, eem1 = mdast.SStrong, mdast.EStrong
	}
	sem2 := mdast.SEm
	if n2 == 2 {
		sem2 = mdast.SStrong
	}
	already := p.nestExists(n1)
	if !already {
		if !rightwhite {
			p.nest = append(p.nest, nestFrame{pos: len(*out), n: n1})
			*out = append(*out, mdast.Token{Kind: sem1, Begin: begin, End: end})
			return
		}
	} else if top := p.nest[len(p.nest)-1]; top.n == n1 || top.n == 3 {
		smark := p.src[(*out)[top.pos].Begin]
		if !leftwhite && smark == p.src[begin] {
			p.nest = p.nest[:len(p.nest)-1]
			*out = append(*out, mdast.Token{Kind: eem1, Begin: begin, End: end})
			if len(p.nest) > 0 && p.nest[len(p.nest)-1].n == 3 {
				fp := p.nest[len(p.nest)-1].pos
				(*out)[fp].Kind = sem2
				(*out)[fp].End = (*out)[fp].Begin + n2
				(*out)[fp+1].Kind = sem1
				p.nest[len(p.nest)-1].n = n2
			}
			return
		}
	}
	*out = append(*out, mdast.Token{Kind: mdast.Text, Begin: begin, End: end})
}

// pairTriple handles length-three runs: open both <strong> and <em> at
// once, or close both when two matching frames top the stack, ordering
// the end markers by the inner frame's kind.
func (p *inlineParser) pairTriple(begin, end int, leftwhite, rightwhite bool, out *[]mdast.Token) {
	nn := len(p.nest)
	already := p.nestExists(3)
	if !already {
		if !rightwhite {
			p.nest = append(p.nest,
				nestFrame{pos: len(*out), n: 3},
				nestFrame{pos: len(*out), n: 3})
			*out = append(*out,
				mdast.Token{Kind: mdast.SStrong, Begin: begin, End: end},
				mdast.Token{Kind: mdast.SEm, Begin: begin, End: begin})
			return
		}
	} else if nn >= 2 && p.nest[nn-1].n > 0 && p.nest[nn-2].n > 0 {
		smark := p.src[(*out)[p.nest[nn-1].pos].Begin]
		switch {
		case leftwhite || smark != p.src[begin]:
			// fall through to text
		case p.nest[nn-1].n != 2:
			*out = append(*out,
				mdast.Token{Kind: mdast.EEm, Begin: begin, End: end},
				mdast.Token{Kind: mdast.EStrong, Begin: begin, End: end})
			p.nest = p.nest[:nn-2]
			return
		default:
			*out = append(*out,
				mdast.Token{Kind: mdast.EStrong, Begin: begin, End: end},
				mdast.Token{Kind: mdast.EEm, Begin: begin, End: end})
			p.nest = p.nest[:nn-2]
			return
		}
	}
	appendText(out, begin, end)
}
