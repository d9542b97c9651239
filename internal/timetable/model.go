// Package timetable holds the canonical schedule model shared by the parser,
// the tagger and the publishers.
package timetable

import (
	"maps"
	"slices"
	"strings"
)

// Entry is one (subject, teacher, room) triple. An empty string means the
// value is absent and is published as null.
type Entry struct {
	Subject string
	Teacher string
	Room    string
}

// IsZero reports whether all three fields are empty.
func (e Entry) IsZero() bool {
	return e.Subject == "" && e.Teacher == "" && e.Room == ""
}

// Shape is the structural classification of a single timetable cell.
type Shape int

const (
	ShapeFree Shape = iota
	ShapeSingle
	ShapeMulti
	ShapeMarker // unrecognised content, read as free
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeMulti:
		return "multi"
	case ShapeMarker:
		return "marker"
	default:
		return "free"
	}
}

// Cell is a classified cell. The payload is determined by Shape:
// Single uses Entry, Multi uses Entries, Free and Marker carry nothing.
type Cell struct {
	Shape   Shape
	Entry   Entry
	Entries []Entry
}

// Kind is the shape of an assembled lesson. Markers never survive tagging.
type Kind int

const (
	KindFree Kind = iota
	KindSingle
	KindMulti
)

// Facets are the boolean flags derived from a lesson's subject text.
type Facets struct {
	Lab             bool
	Tutorial        bool
	Elective        bool
	Free            bool
	OtherDepartment bool
}

// Lesson is one slot of a group's week.
type Lesson struct {
	Day    string
	Period string
	Kind   Kind
	Facets Facets

	// Entry is set for KindSingle.
	Entry Entry
	// Entries is set for KindMulti. A sliced lesson may hold an empty,
	// non-nil slice.
	Entries []Entry
}

// Clone returns a deep copy of l.
func (l Lesson) Clone() Lesson {
	if l.Entries != nil {
		entries := make([]Entry, len(l.Entries))
		copy(entries, l.Entries)
		l.Entries = entries
	}
	return l
}

// GroupSchedule is the ordered week of one subgroup.
type GroupSchedule struct {
	GroupID string
	Lessons []Lesson
}

// Clone returns a deep copy of g.
func (g GroupSchedule) Clone() GroupSchedule {
	out := GroupSchedule{GroupID: g.GroupID, Lessons: make([]Lesson, len(g.Lessons))}
	for i, l := range g.Lessons {
		out.Lessons[i] = l.Clone()
	}
	return out
}

// Document is the published artifact of one department scrape.
type Document struct {
	SourceURL string
	Groups    map[string]GroupSchedule
}

// NewDocument returns an empty document for url.
func NewDocument(url string) *Document {
	return &Document{SourceURL: url, Groups: make(map[string]GroupSchedule)}
}

// Lookup finds a group by id, ignoring case and whitespace.
func (d *Document) Lookup(name string) (GroupSchedule, bool) {
	if g, ok := d.Groups[name]; ok {
		return g, true
	}
	want := foldID(name)
	if want == "" {
		return GroupSchedule{}, false
	}
	for _, id := range slices.Sorted(maps.Keys(d.Groups)) {
		if foldID(id) == want {
			return d.Groups[id], true
		}
	}
	return GroupSchedule{}, false
}

func foldID(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
