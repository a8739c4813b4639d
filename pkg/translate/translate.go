// Package translate converts a Markdown document to an HTML fragment.
//
// ToHTML is a pure function: the same input bytes always produce the
// same output bytes, with no I/O or shared state. The work is a
// three-pass pipeline over one immutable buffer: line tokenization
// (which also collects reference-link definitions), block structuring,
// and per-run inline parsing driven by the output writer.
package translate

import (
	"github.com/yaklabco/mdhtml/pkg/parser"
	"github.com/yaklabco/mdhtml/pkg/refs"
)

// ToHTML translates Markdown input to an HTML fragment. It never
// fails: malformed constructs degrade to literal text. Only '\n' line
// endings are interpreted; callers normalize CRLF beforehand.
func ToHTML(input string) string {
	src := []byte(input)
	dict := refs.NewDict()
	lines := parser.SplitLines(src, dict)
	blocks := parser.ParseBlocks(src, lines)
	w := &writer{dict: dict}
	w.printBlocks(src, blocks)
	return w.sb.String()
}
