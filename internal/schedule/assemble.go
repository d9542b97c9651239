// Package schedule merges per-table schedules into a document and answers
// "what is on now" questions against it.
package schedule

import "timetable-go/internal/timetable"

// Assemble merges group schedules into one document keyed by group id. A
// group id seen twice keeps the later schedule. The returned ids list every
// group id in first-seen order, without duplicates.
func Assemble(url string, groups []timetable.GroupSchedule) (*timetable.Document, []string) {
	doc := timetable.NewDocument(url)
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, seen := doc.Groups[g.GroupID]; !seen {
			ids = append(ids, g.GroupID)
		}
		doc.Groups[g.GroupID] = g
	}
	return doc, ids
}

// AllFree reports whether every lesson of g is a free slot.
func AllFree(g timetable.GroupSchedule) bool {
	for _, l := range g.Lessons {
		if !l.Facets.Free {
			return false
		}
	}
	return true
}
