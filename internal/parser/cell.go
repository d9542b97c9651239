package parser

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"timetable-go/internal/lesson"
	"timetable-go/internal/timetable"
)

// -x-, a run of dashes, or nothing at all
var placeholder = regexp.MustCompile(`(?i)^(?:-x-|-+)?$`)

// Classifier turns cell markup into a timetable.Cell. It holds no state, so
// one value may classify any number of cells.
type Classifier struct {
	// ClassedCells enables pages that mark fields with .subject, .teacher
	// and .room elements and free slots with td.empty.
	ClassedCells bool
}

// Classify decides the shape of a cell. Precedence: nested table, classed
// fields, placeholder or single-line text, then <br> separated lines.
func (c Classifier) Classify(cell *goquery.Selection) timetable.Cell {
	if nested := cell.Find("table"); nested.Length() > 0 {
		return classifyNested(nested.First())
	}
	if c.ClassedCells {
		if out, ok := classifyClassed(cell); ok {
			return out
		}
	}
	if placeholder.MatchString(cleanText(cell.Text())) || cell.Find("br").Length() == 0 {
		return timetable.Cell{Shape: timetable.ShapeFree}
	}
	markup, err := cell.Html()
	if err != nil {
		return timetable.Cell{Shape: timetable.ShapeMarker}
	}
	return classifyLines(splitLines(markup))
}

// classifyNested reads an elective/batch grid: its last three rows hold
// subjects, teachers and rooms, one column per parallel batch.
func classifyNested(t *goquery.Selection) timetable.Cell {
	var rows [][]string
	t.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cols []string
		tr.ChildrenFiltered("td, th").Each(func(_ int, c *goquery.Selection) {
			cols = append(cols, cleanText(c.Text()))
		})
		rows = append(rows, cols)
	})
	if len(rows) == 0 || len(rows[0]) == 0 {
		return timetable.Cell{Shape: timetable.ShapeMarker}
	}

	at := func(r, c int) string {
		if r < 0 || r >= len(rows) || c >= len(rows[r]) {
			return ""
		}
		return rows[r][c]
	}
	n := len(rows)
	var entries []timetable.Entry
	for col := range rows[0] {
		e := timetable.Entry{Subject: at(n-3, col), Teacher: at(n-2, col), Room: at(n-1, col)}
		if !e.IsZero() {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return timetable.Cell{Shape: timetable.ShapeMarker}
	}
	return timetable.Cell{Shape: timetable.ShapeMulti, Entries: entries}
}

func classifyClassed(cell *goquery.Selection) (timetable.Cell, bool) {
	if cell.HasClass("empty") {
		return timetable.Cell{Shape: timetable.ShapeFree}, true
	}
	subj := cell.Find(".subject")
	if subj.Length() == 0 {
		return timetable.Cell{}, false
	}
	e := timetable.Entry{
		Subject: cleanText(subj.First().Text()),
		Teacher: cleanText(cell.Find(".teacher").First().Text()),
		Room:    cleanText(cell.Find(".room").First().Text()),
	}
	if e.Subject == "" {
		return timetable.Cell{Shape: timetable.ShapeFree}, true
	}
	return timetable.Cell{Shape: timetable.ShapeSingle, Entry: e}, true
}

// classifyLines extracts fields from the text lines of a <br> separated cell.
func classifyLines(parts []string) timetable.Cell {
	if len(parts) == 0 {
		return timetable.Cell{Shape: timetable.ShapeMarker}
	}
	for _, p := range parts {
		if subject, ok := lesson.ProjectSubject(p); ok {
			return timetable.Cell{
				Shape: timetable.ShapeSingle,
				Entry: timetable.Entry{Subject: subject, Room: parts[len(parts)-1]},
			}
		}
	}
	if len(parts) == 3 {
		return timetable.Cell{
			Shape: timetable.ShapeSingle,
			Entry: timetable.Entry{Subject: parts[0], Teacher: parts[1], Room: parts[2]},
		}
	}

	// parts are never empty, so a triple is complete when its room exists
	var entries []timetable.Entry
	for i := 0; i+2 < len(parts); i += 3 {
		entries = append(entries, timetable.Entry{Subject: parts[i], Teacher: parts[i+1], Room: parts[i+2]})
	}
	switch len(entries) {
	case 0:
		// an unlabeled slot; the tagger reads it as another department's class
		return timetable.Cell{Shape: timetable.ShapeSingle}
	case 1:
		return timetable.Cell{Shape: timetable.ShapeSingle, Entry: entries[0]}
	}
	return timetable.Cell{Shape: timetable.ShapeMulti, Entries: entries}
}
