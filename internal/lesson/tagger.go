// Package lesson derives lesson facets from extracted subject text.
package lesson

import (
	"strings"

	"timetable-go/internal/timetable"
)

const (
	MinorProject = "Minor Project"
	MajorProject = "Major Project"
)

var projectMarkers = map[string]string{
	"MNP":     MinorProject,
	"MNP MNP": MinorProject,
	"MJP":     MajorProject,
	"MJP MJP": MajorProject,
}

// ProjectSubject maps a project marker line (MNP, MJP MJP, ...) to its
// subject name. Matching ignores case and surrounding space.
func ProjectSubject(s string) (string, bool) {
	subject, ok := projectMarkers[strings.ToUpper(strings.TrimSpace(s))]
	return subject, ok
}

// NormalizeProject rewrites a project-coded entry to its canonical subject and
// clears the teacher. Already normalised entries are left as they are.
func NormalizeProject(e *timetable.Entry) {
	if subject, ok := ProjectSubject(e.Subject); ok {
		e.Subject = subject
		e.Teacher = ""
	} else if e.Subject == MinorProject || e.Subject == MajorProject {
		e.Teacher = ""
	}
}

// IsLab reports a practical: "... P" or "(P)...".
func IsLab(subject string) bool {
	s := strings.TrimSpace(subject)
	return strings.HasSuffix(s, " P") || strings.HasPrefix(s, "(P)")
}

// IsTutorial reports a tutorial: "... T".
func IsTutorial(subject string) bool {
	return strings.HasSuffix(strings.TrimSpace(subject), " T")
}

// Tagger holds the lab and tutorial predicates. Departments with explicit
// classification tables can swap them without touching the rest of the
// pipeline.
type Tagger struct {
	Lab      func(subject string) bool
	Tutorial func(subject string) bool
}

// Default uses the suffix conventions shared by all known departments.
var Default = Tagger{Lab: IsLab, Tutorial: IsTutorial}

// Tag builds the lesson for one classified cell.
func Tag(day, period string, cell timetable.Cell) timetable.Lesson {
	return Default.Tag(day, period, cell)
}

// Tag builds the lesson for one classified cell.
func (t Tagger) Tag(day, period string, cell timetable.Cell) timetable.Lesson {
	l := timetable.Lesson{Day: day, Period: period}

	switch cell.Shape {
	case timetable.ShapeSingle:
		l.Kind = timetable.KindSingle
		l.Entry = cell.Entry
		t.tagSingle(&l)

	case timetable.ShapeMulti:
		if len(cell.Entries) == 0 {
			l.Kind = timetable.KindFree
			l.Facets.Free = true
			return l
		}
		l.Kind = timetable.KindMulti
		l.Entries = make([]timetable.Entry, len(cell.Entries))
		copy(l.Entries, cell.Entries)
		t.tagMulti(&l)

	default:
		l.Kind = timetable.KindFree
		l.Facets.Free = true
	}
	return l
}

func (t Tagger) tagSingle(l *timetable.Lesson) {
	l.Facets.Lab = t.Lab(l.Entry.Subject)
	l.Facets.Tutorial = t.Tutorial(l.Entry.Subject)
	NormalizeProject(&l.Entry)
	// a bare slot on this page is a course run by another department
	l.Facets.OtherDepartment = l.Entry.Subject == "" && !l.Facets.Lab && !l.Facets.Tutorial
}

func (t Tagger) tagMulti(l *timetable.Lesson) {
	allLab, allTut := true, true
	for _, e := range l.Entries {
		allLab = allLab && t.Lab(e.Subject)
		allTut = allTut && t.Tutorial(e.Subject)
	}

	switch {
	case allLab:
		l.Facets.Lab = true
	case allTut:
		l.Facets.Tutorial = true
		// one active tutorial batch reads as an ordinary class
		if len(l.Entries) == 1 {
			l.Kind = timetable.KindSingle
			l.Entry = l.Entries[0]
			l.Entries = nil
			NormalizeProject(&l.Entry)
		}
	default:
		l.Facets.Elective = true
	}
}
