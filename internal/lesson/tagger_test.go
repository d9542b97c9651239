package lesson

import (
	"reflect"
	"testing"

	"timetable-go/internal/timetable"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		subject  string
		lab, tut bool
	}{
		{"DBMS P", true, false},
		{"(P) Networks", true, false},
		{"  OS P  ", true, false},
		{"Maths T", false, true},
		{"Algorithms", false, false},
		{"APP", false, false},
		{"DATA", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := IsLab(tt.subject); got != tt.lab {
			t.Errorf("IsLab(%q) = %v, want %v", tt.subject, got, tt.lab)
		}
		if got := IsTutorial(tt.subject); got != tt.tut {
			t.Errorf("IsTutorial(%q) = %v, want %v", tt.subject, got, tt.tut)
		}
	}
}

func TestTagSingle(t *testing.T) {
	l := Tag("Monday", "08:30", timetable.Cell{
		Shape: timetable.ShapeSingle,
		Entry: timetable.Entry{Subject: "Algorithms", Teacher: "Dr. Rao", Room: "Room 204"},
	})
	want := timetable.Lesson{
		Day: "Monday", Period: "08:30", Kind: timetable.KindSingle,
		Entry: timetable.Entry{Subject: "Algorithms", Teacher: "Dr. Rao", Room: "Room 204"},
	}
	if !reflect.DeepEqual(l, want) {
		t.Fatalf("got %+v, want %+v", l, want)
	}
}

func TestTagSingleLabAndTutorial(t *testing.T) {
	lab := Tag("Monday", "08:30", timetable.Cell{Shape: timetable.ShapeSingle, Entry: timetable.Entry{Subject: "OS P", Room: "L1"}})
	if !lab.Facets.Lab || lab.Facets.Tutorial || lab.Facets.OtherDepartment {
		t.Errorf("lab facets = %+v", lab.Facets)
	}
	tut := Tag("Monday", "08:30", timetable.Cell{Shape: timetable.ShapeSingle, Entry: timetable.Entry{Subject: "Maths T", Room: "R1"}})
	if tut.Facets.Lab || !tut.Facets.Tutorial {
		t.Errorf("tutorial facets = %+v", tut.Facets)
	}
}

func TestTagOtherDepartment(t *testing.T) {
	l := Tag("Tuesday", "10:30", timetable.Cell{Shape: timetable.ShapeSingle})
	if !l.Facets.OtherDepartment || l.Facets.Free || l.Facets.Elective {
		t.Fatalf("facets = %+v, want only OtherDepartment", l.Facets)
	}
}

func TestTagFreeAndMarker(t *testing.T) {
	for _, shape := range []timetable.Shape{timetable.ShapeFree, timetable.ShapeMarker} {
		l := Tag("Monday", "08:30", timetable.Cell{Shape: shape})
		if l.Kind != timetable.KindFree || !l.Facets.Free || l.Facets.OtherDepartment {
			t.Errorf("%s: got kind %v facets %+v", shape, l.Kind, l.Facets)
		}
	}
}

func TestTagProjectNormalization(t *testing.T) {
	l := Tag("Friday", "13:30", timetable.Cell{
		Shape: timetable.ShapeSingle,
		Entry: timetable.Entry{Subject: "mnp mnp", Teacher: "ABC", Room: "Lab 3"},
	})
	if l.Entry.Subject != MinorProject || l.Entry.Teacher != "" || l.Entry.Room != "Lab 3" {
		t.Fatalf("entry = %+v", l.Entry)
	}

	// normalising twice changes nothing
	again := l.Entry
	NormalizeProject(&again)
	if again != l.Entry {
		t.Fatalf("second normalisation changed %+v to %+v", l.Entry, again)
	}
}

func TestTagMulti(t *testing.T) {
	labs := []timetable.Entry{{Subject: "OS P", Room: "L1"}, {Subject: "DBMS P", Room: "L2"}}
	tuts := []timetable.Entry{{Subject: "Maths T", Room: "R1"}, {Subject: "Physics T", Room: "R2"}}
	mixed := []timetable.Entry{{Subject: "OS P", Room: "L1"}, {Subject: "Maths T", Room: "R1"}}
	electives := []timetable.Entry{{Subject: "AI", Room: "R1"}, {Subject: "Cloud", Room: "R2"}}

	tests := []struct {
		name    string
		entries []timetable.Entry
		want    timetable.Facets
	}{
		{"all labs", labs, timetable.Facets{Lab: true}},
		{"all tutorials", tuts, timetable.Facets{Tutorial: true}},
		{"mixed batches", mixed, timetable.Facets{Elective: true}},
		{"electives", electives, timetable.Facets{Elective: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Tag("Monday", "11:30", timetable.Cell{Shape: timetable.ShapeMulti, Entries: tt.entries})
			if l.Kind != timetable.KindMulti {
				t.Fatalf("kind = %v, want multi", l.Kind)
			}
			if l.Facets != tt.want {
				t.Fatalf("facets = %+v, want %+v", l.Facets, tt.want)
			}
			if len(l.Entries) != len(tt.entries) {
				t.Fatalf("entries = %d, want %d", len(l.Entries), len(tt.entries))
			}
		})
	}
}

func TestTagSingleTutorialBatchFlattens(t *testing.T) {
	l := Tag("Monday", "11:30", timetable.Cell{
		Shape:   timetable.ShapeMulti,
		Entries: []timetable.Entry{{Subject: "Maths T", Teacher: "RS", Room: "R1"}},
	})
	if l.Kind != timetable.KindSingle || l.Entries != nil {
		t.Fatalf("want flattened single, got kind %v entries %v", l.Kind, l.Entries)
	}
	if l.Entry.Subject != "Maths T" || l.Entry.Room != "R1" || !l.Facets.Tutorial {
		t.Fatalf("got %+v", l)
	}
}

func TestTagDoesNotAliasCellEntries(t *testing.T) {
	cell := timetable.Cell{Shape: timetable.ShapeMulti, Entries: []timetable.Entry{{Subject: "A P"}, {Subject: "B P"}}}
	l := Tag("Monday", "08:30", cell)
	l.Entries[0].Subject = "changed"
	if cell.Entries[0].Subject != "A P" {
		t.Fatal("lesson shares its entries with the cell")
	}
}

func TestCustomTagger(t *testing.T) {
	tagger := Tagger{
		Lab:      func(s string) bool { return s == "Workshop" },
		Tutorial: func(string) bool { return false },
	}
	l := tagger.Tag("Monday", "08:30", timetable.Cell{Shape: timetable.ShapeSingle, Entry: timetable.Entry{Subject: "Workshop"}})
	if !l.Facets.Lab {
		t.Fatal("custom lab predicate ignored")
	}
}
