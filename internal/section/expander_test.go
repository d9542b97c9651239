package section

import (
	"fmt"
	"reflect"
	"testing"

	"timetable-go/internal/timetable"
)

func batchLesson(period string, subjects ...string) timetable.Lesson {
	l := timetable.Lesson{Day: "Monday", Period: period, Kind: timetable.KindMulti, Facets: timetable.Facets{Lab: true}}
	for i, s := range subjects {
		l.Entries = append(l.Entries, timetable.Entry{Subject: s, Room: fmt.Sprintf("Lab %d", i+1)})
	}
	return l
}

func sectionLessons() []timetable.Lesson {
	return []timetable.Lesson{
		{Day: "Monday", Period: "08:30", Kind: timetable.KindSingle, Entry: timetable.Entry{Subject: "Algorithms", Teacher: "Dr. Rao", Room: "204"}},
		{Day: "Monday", Period: "09:30", Kind: timetable.KindFree, Facets: timetable.Facets{Free: true}},
		batchLesson("10:30", "OS P", "DBMS P", "CN P"),
		batchLesson("11:30", "OS P"),
		{Day: "Monday", Period: "12:30", Kind: timetable.KindMulti, Facets: timetable.Facets{Elective: true},
			Entries: []timetable.Entry{{Subject: "AI"}, {Subject: "Cloud"}, {Subject: "IoT"}, {Subject: "ML"}}},
	}
}

func TestPatternIDs(t *testing.T) {
	tests := []struct {
		pattern *Pattern
		label   string
		n       int
		want    []string
	}{
		{Default, "D2 CS A", 2, []string{"D2A1", "D2A2"}},
		{Default, "d3 cs b", 3, []string{"D3B1", "D3B2", "D3B3"}},
		{Default, " D4 IT C ", 1, []string{"D4C1"}},
		{MustCompile(`^(?i)(?P<year>BCA\d+)\s*-?\s*(?P<section>[A-Z])$`, "{year}-{section}{n}"), "BCA1-A", 2, []string{"BCA1-A1", "BCA1-A2"}},
		{MustCompile(`^(?i)(?P<year>D\d+)\s+ME\s+(?P<section>[A-Z])$`, "{year} ME {section}{n}"), "D2 ME A", 3, []string{"D2 ME A1", "D2 ME A2", "D2 ME A3"}},
	}
	for _, tt := range tests {
		got, ok := tt.pattern.IDs(tt.label, tt.n)
		if !ok || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("IDs(%q, %d) = %q, %v; want %q", tt.label, tt.n, got, ok, tt.want)
		}
	}

	for _, label := range []string{"D2 CS", "M1 Automatic Group", "D2 CS AB", "ECE 3"} {
		if _, ok := Default.IDs(label, 2); ok {
			t.Errorf("IDs(%q) unexpectedly matched", label)
		}
	}
	var none *Pattern
	if _, ok := none.IDs("D2 CS A", 2); ok {
		t.Error("nil pattern matched")
	}
}

func TestCompileRejectsBadPatterns(t *testing.T) {
	bad := [][2]string{
		{`(`, DefaultFormat},
		{`^(?P<year>D\d)$`, DefaultFormat},
		{DefaultExpr, "{year}{section}"},
	}
	for _, b := range bad {
		if _, err := Compile(b[0], b[1]); err == nil {
			t.Errorf("Compile(%q, %q) succeeded", b[0], b[1])
		}
	}
}

func TestMaxSubgroups(t *testing.T) {
	if got := MaxSubgroups(sectionLessons()); got != 3 {
		t.Fatalf("MaxSubgroups = %d, want 3 (electives do not count)", got)
	}
	if got := MaxSubgroups(nil); got != MinSubgroups {
		t.Fatalf("MaxSubgroups(nil) = %d, want %d", got, MinSubgroups)
	}
}

func TestExpand(t *testing.T) {
	src := sectionLessons()
	groups, expanded := Expand(Default, "D2 CS A", src)
	if !expanded || len(groups) != 3 {
		t.Fatalf("got %d groups (expanded=%v), want 3", len(groups), expanded)
	}

	for i, g := range groups {
		if want := fmt.Sprintf("D2A%d", i+1); g.GroupID != want {
			t.Fatalf("group %d id = %q, want %q", i, g.GroupID, want)
		}
		if len(g.Lessons) != len(src) {
			t.Fatalf("%s has %d lessons, want %d", g.GroupID, len(g.Lessons), len(src))
		}
		for j, l := range g.Lessons {
			if isBatch(src[j]) {
				if len(l.Entries) > 1 {
					t.Errorf("%s lesson %d kept %d entries", g.GroupID, j, len(l.Entries))
				}
				continue
			}
			if !reflect.DeepEqual(l, src[j]) {
				t.Errorf("%s lesson %d changed: %+v", g.GroupID, j, l)
			}
		}
	}

	if got := groups[1].Lessons[2].Entries; len(got) != 1 || got[0].Subject != "DBMS P" {
		t.Errorf("D2A2 10:30 = %+v, want DBMS P", got)
	}
	// the 11:30 slot only has one batch
	if got := groups[2].Lessons[3].Entries; got == nil || len(got) != 0 {
		t.Errorf("D2A3 11:30 = %#v, want empty non-nil", got)
	}
}

func TestExpandCopiesDeeply(t *testing.T) {
	src := sectionLessons()
	groups, _ := Expand(Default, "D2 CS A", src)

	groups[0].Lessons[4].Entries[0].Subject = "changed"
	groups[0].Lessons[2].Entries[0].Subject = "changed"
	if groups[1].Lessons[4].Entries[0].Subject != "AI" {
		t.Fatal("expanded groups share elective entries")
	}
	if src[2].Entries[0].Subject != "OS P" || src[4].Entries[0].Subject != "AI" {
		t.Fatal("expansion mutated the source lessons")
	}
}

func TestExpandPassThrough(t *testing.T) {
	src := sectionLessons()
	groups, expanded := Expand(Default, "M1 Automatic Group", src)
	if expanded || len(groups) != 1 || groups[0].GroupID != "M1 Automatic Group" {
		t.Fatalf("got %+v (expanded=%v)", groups, expanded)
	}
	if !reflect.DeepEqual(groups[0].Lessons, src) {
		t.Fatal("pass-through lessons were sliced")
	}
	groups[0].Lessons[2].Entries[0].Subject = "changed"
	if src[2].Entries[0].Subject != "OS P" {
		t.Fatal("pass-through shares entries with the source")
	}

	groups, expanded = Expand(nil, "D2 CS A", src)
	if expanded || len(groups) != 1 || groups[0].GroupID != "D2 CS A" {
		t.Fatalf("nil pattern: got %+v", groups)
	}
}
