package translate_test

import (
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/mdhtml/pkg/translate"
)

// FuzzToHTML checks the never-fail contract: any input translates
// without panicking, twice over with identical results.
func FuzzToHTML(f *testing.F) {
	seeds := []string{
		"",
		"hello **world**\n",
		"# Title\n\nPara\n",
		"> a\n> b\n\nc\n",
		"[ex]: http://e.x \"t\"\n\nSee [it][ex].\n",
		"***bold italic***\n",
		"```\ncode\n```\n",
		"- a\n    - b\n",
		"<div>\nx\n</div>\n",
		"![a](/i.png)\n",
		"\\*\\_\\`\\[\\]\n",
		"``` \n * _ ` [ ] ! < > ( )",
		"*a _b* c_",
		"[a [b](u)](v)\n",
		"<not <a> tag",
		"&#x; &amp &;",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		first := translate.ToHTML(input)
		second := translate.ToHTML(input)
		if first != second {
			t.Fatalf("translation is not deterministic for %q", input)
		}
		if utf8.ValidString(input) && !utf8.ValidString(first) {
			t.Fatalf("valid UTF-8 input produced invalid UTF-8 output: %q", input)
		}
	})
}
