package parser

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Strategy selects how a department's page labels its timetable tables.
type Strategy string

const (
	// StrategyAnchors reads an index of <a href="#tableId">label</a> links.
	StrategyAnchors Strategy = "anchors"
	// StrategyCaption reads the label from a .name element in <caption>.
	StrategyCaption Strategy = "caption"
	// StrategyHeader reads the label from the first th[colspan] of the
	// table's first header row.
	StrategyHeader Strategy = "header"
)

// DefaultAnchorSelector matches in-page index links.
const DefaultAnchorSelector = `ul li a[href^="#"]`

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyAnchors, StrategyCaption, StrategyHeader:
		return true
	}
	return false
}

// Located is a timetable table together with its raw group label.
type Located struct {
	Label string
	Table *goquery.Selection
}

// Miss is a table (or index entry) the locator skipped.
type Miss struct {
	Label  string
	Reason string
}

// Locator finds the labelled tables of a document.
type Locator struct {
	Strategy       Strategy
	AnchorSelector string
}

// Locate returns the labelled tables in document order. Tables whose label
// cannot be resolved are reported as misses and never abort the scan.
func (l Locator) Locate(doc *goquery.Document) ([]Located, []Miss) {
	switch l.Strategy {
	case StrategyAnchors:
		return l.locateAnchors(doc)
	case StrategyCaption:
		return locateTables(doc, captionLabel)
	case StrategyHeader:
		return locateTables(doc, headerLabel)
	}
	return nil, []Miss{{Reason: fmt.Sprintf("unknown strategy %q", l.Strategy)}}
}

func (l Locator) locateAnchors(doc *goquery.Document) ([]Located, []Miss) {
	sel := l.AnchorSelector
	if sel == "" {
		sel = DefaultAnchorSelector
	}

	var found []Located
	var misses []Miss
	doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
		label := cleanText(a.Text())
		target := AnchorTarget(a.AttrOr("href", ""))
		if label == "" || target == "" {
			misses = append(misses, Miss{Label: label, Reason: "index link without label or target"})
			return
		}
		table := tableByID(doc, target)
		if table == nil {
			misses = append(misses, Miss{Label: label, Reason: "no table with id " + target})
			return
		}
		found = append(found, Located{Label: label, Table: table})
	})
	return found, misses
}

// tableByID resolves an element id to a table: the element itself, or the
// first table inside it when the id sits on a wrapper.
func tableByID(doc *goquery.Document, id string) *goquery.Selection {
	el := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
	if el.Length() == 0 {
		return nil
	}
	if el.Is("table") {
		return el
	}
	if t := el.Find("table").First(); t.Length() > 0 {
		return t
	}
	return nil
}

func locateTables(doc *goquery.Document, label func(*goquery.Selection) string) ([]Located, []Miss) {
	var found []Located
	var misses []Miss
	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		// cells of a timetable may hold their own tables
		if t.ParentsFiltered("table").Length() > 0 {
			return
		}
		name := label(t)
		if name == "" {
			misses = append(misses, Miss{Reason: fmt.Sprintf("table %d has no group label", i)})
			return
		}
		found = append(found, Located{Label: name, Table: t})
	})
	return found, misses
}

func captionLabel(t *goquery.Selection) string {
	return cleanText(t.ChildrenFiltered("caption").Find(".name").First().Text())
}

func headerLabel(t *goquery.Selection) string {
	first := t.ChildrenFiltered("thead").ChildrenFiltered("tr").First()
	return cleanText(first.ChildrenFiltered("th[colspan]").First().Text())
}
