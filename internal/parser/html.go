package parser

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var strictText = bluemonday.StrictPolicy()

// splitLines splits cell markup on its <br> separators and returns the plain
// text of every non-empty fragment, in order.
func splitLines(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))
	parts := make([]string, 0, 4)
	var frag strings.Builder

	flush := func() {
		if txt := fragmentText(frag.String()); txt != "" {
			parts = append(parts, txt)
		}
		frag.Reset()
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			// browsers read a stray </br> as a break too
			if name, _ := z.TagName(); string(name) == "br" {
				flush()
				continue
			}
		}
		frag.Write(z.Raw())
	}
	flush()
	return parts
}

// fragmentText strips all markup from a fragment and decodes entities.
func fragmentText(markup string) string {
	return cleanText(html.UnescapeString(strictText.Sanitize(markup)))
}
