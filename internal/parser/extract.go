// internal/parser/extract.go
package parser

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Load parses a fetched timetable page and drops nodes that never carry
// schedule data.
func Load(htmlBody []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}
	doc.Find("script, style, noscript").Remove()
	return doc, nil
}

// Title returns the trimmed <title> of the page.
func Title(doc *goquery.Document) string {
	return cleanText(doc.Find("title").First().Text())
}

// helper: collapse whitespace runs (nbsp included) into single spaces
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
