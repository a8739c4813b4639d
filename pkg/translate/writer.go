package translate

import (
	"strings"

	"github.com/yaklabco/mdhtml/pkg/mdast"
	"github.com/yaklabco/mdhtml/pkg/parser"
	"github.com/yaklabco/mdhtml/pkg/refs"
)

// writer walks the block parser's output, collecting Inline runs for
// the inline parser and emitting HTML with context-specific escaping.
type writer struct {
	sb   strings.Builder
	dict *refs.Dict
}

// printBlocks renders the block token sequence. Groups of blank lines
// collapse to a single separating newline, never before the first
// block or after the last.
func (w *writer) printBlocks(src []byte, toks []mdast.Token) {
	dot, dol := 0, len(toks)
	for dot < dol && toks[dot].Kind == mdast.Blank {
		dot++
	}
	for dot < dol {
		old := dot
		t := toks[dot]
		switch {
		case t.Kind == mdast.Blank:
			for dot < dol && toks[dot].Kind == mdast.Blank {
				dot++
			}
			if dot < dol {
				w.sb.WriteByte('\n')
			}
		case t.Kind.IsBlockMarker():
			if (t.Kind == mdast.SOList || t.Kind == mdast.SUList) &&
				dot >= 2 && toks[dot-1].Kind == mdast.Inline {
				w.sb.WriteByte('\n')
			}
			w.sb.WriteString(t.Kind.Literal())
			dot++
		case t.Kind == mdast.HTML:
			w.sb.Write(t.Slice(src))
			dot++
		case t.Kind == mdast.Code:
			for dot < dol && toks[dot].Kind == mdast.Code {
				c := toks[dot]
				if dot+1 < dol && toks[dot+1].Kind != mdast.Code &&
					c.Begin < c.End-1 && src[c.End-1] == '\n' {
					escapeAll(&w.sb, src[c.Begin:c.End-1])
				} else {
					escapeAll(&w.sb, c.Slice(src))
				}
				dot++
			}
		case t.Kind == mdast.Inline:
			var run []byte
			for dot < dol && toks[dot].Kind == mdast.Inline {
				run = append(run, toks[dot].Slice(src)...)
				dot++
			}
			if len(run) > 0 && run[len(run)-1] == '\n' {
				run = run[:len(run)-1]
			}
			w.printInline(run, parser.ParseInline(run, w.dict))
		}
		if old == dot {
			dot++
		}
	}
}

// printInline renders one inline token sequence produced from run.
// Adjacent text tokens are concatenated, backslash-unescaped, then
// escaped as general text.
func (w *writer) printInline(run []byte, toks []mdast.Token) {
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind >= mdast.Break:
			w.sb.WriteString(t.Kind.Literal())
		case t.Kind == mdast.Code:
			escapeAll(&w.sb, t.Slice(run))
		case t.Kind == mdast.HTML:
			w.sb.Write(t.Slice(run))
		case t.Kind == mdast.SABegin || t.Kind == mdast.ImgBegin:
			i = w.printAnchor(run, toks, i)
		case t.Kind == mdast.Text:
			var text []byte
			for i < len(toks) && toks[i].Kind == mdast.Text {
				text = append(text, toks[i].Slice(run)...)
				i++
			}
			i--
			escapeText(&w.sb, unescapeBackslash(text))
		}
	}
}

// printAnchor renders a link or image opening: the href/src attribute,
// the alt text for images, and the optional title, each with its own
// escaping. Returns the index of the last consumed token (SAEnd or
// ImgEnd); a link's inner tokens follow in the caller's loop.
func (w *writer) printAnchor(run []byte, toks []mdast.Token, i int) int {
	skind := toks[i].Kind
	w.sb.WriteString(skind.Literal())
	i++
	var title mdast.Token
	hasTitle := false
	if i < len(toks) && toks[i].Kind == mdast.URI {
		escapeURI(&w.sb, unescapeBackslash(toks[i].Slice(run)))
		i++
		if i < len(toks) && toks[i].Kind == mdast.Title {
			title = toks[i]
			hasTitle = true
			i++
		}
	}
	if skind == mdast.ImgBegin && i < len(toks) && toks[i].Kind == mdast.Alt {
		w.sb.WriteString(mdast.Alt.Literal())
		escapeText(&w.sb, unescapeBackslash(toks[i].Slice(run)))
		i++
	}
	if hasTitle && title.Len() > 0 {
		w.sb.WriteString(mdast.Title.Literal())
		escapeText(&w.sb, unescapeBackslash(title.Slice(run)))
	}
	if i < len(toks) {
		w.sb.WriteString(toks[i].Kind.Literal())
	}
	return i
}
