package timetable

import "encoding/json"

// The published JSON layout is consumed by the mobile and web clients and
// must keep these exact field names.

type wireEntry struct {
	Subject   *string `json:"subject"`
	Teacher   *string `json:"teacher"`
	ClassRoom *string `json:"classRoom"`
}

type wireData struct {
	Subject         *string     `json:"subject"`
	Teacher         *string     `json:"teacher"`
	ClassRoom       *string     `json:"classRoom"`
	Elective        bool        `json:"elective"`
	FreeClass       bool        `json:"freeClass"`
	Entries         []wireEntry `json:"entries"`
	Lab             bool        `json:"Lab"`
	Tut             bool        `json:"Tut"`
	OtherDepartment bool        `json:"OtherDepartment"`
}

type wireClass struct {
	DayOfClass  string   `json:"dayOfClass"`
	TimeOfClass string   `json:"timeOfClass"`
	Data        wireData `json:"data"`
}

type wireGroup struct {
	Classes []wireClass `json:"classes"`
}

type wireDocument struct {
	URL       string               `json:"url"`
	Timetable map[string]wireGroup `json:"timetable"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toWireEntry(e Entry) wireEntry {
	return wireEntry{Subject: nullable(e.Subject), Teacher: nullable(e.Teacher), ClassRoom: nullable(e.Room)}
}

func fromWireEntry(w wireEntry) Entry {
	return Entry{Subject: deref(w.Subject), Teacher: deref(w.Teacher), Room: deref(w.ClassRoom)}
}

func toWireClass(l Lesson) wireClass {
	d := wireData{
		Elective:        l.Facets.Elective,
		FreeClass:       l.Facets.Free,
		Lab:             l.Facets.Lab,
		Tut:             l.Facets.Tutorial,
		OtherDepartment: l.Facets.OtherDepartment,
	}
	switch l.Kind {
	case KindSingle:
		d.Subject = nullable(l.Entry.Subject)
		d.Teacher = nullable(l.Entry.Teacher)
		d.ClassRoom = nullable(l.Entry.Room)
	case KindMulti:
		d.Entries = make([]wireEntry, 0, len(l.Entries))
		for _, e := range l.Entries {
			d.Entries = append(d.Entries, toWireEntry(e))
		}
	}
	return wireClass{DayOfClass: l.Day, TimeOfClass: l.Period, Data: d}
}

func fromWireClass(w wireClass) Lesson {
	l := Lesson{
		Day:    w.DayOfClass,
		Period: w.TimeOfClass,
		Facets: Facets{
			Lab:             w.Data.Lab,
			Tutorial:        w.Data.Tut,
			Elective:        w.Data.Elective,
			Free:            w.Data.FreeClass,
			OtherDepartment: w.Data.OtherDepartment,
		},
	}
	switch {
	case w.Data.FreeClass:
		l.Kind = KindFree
	case w.Data.Entries != nil:
		l.Kind = KindMulti
		l.Entries = make([]Entry, 0, len(w.Data.Entries))
		for _, e := range w.Data.Entries {
			l.Entries = append(l.Entries, fromWireEntry(e))
		}
	default:
		l.Kind = KindSingle
		l.Entry = Entry{Subject: deref(w.Data.Subject), Teacher: deref(w.Data.Teacher), Room: deref(w.Data.ClassRoom)}
	}
	return l
}

// MarshalJSON encodes the group as {"classes": [...]}.
func (g GroupSchedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.toWire())
}

func (g GroupSchedule) toWire() wireGroup {
	w := wireGroup{Classes: make([]wireClass, 0, len(g.Lessons))}
	for _, l := range g.Lessons {
		w.Classes = append(w.Classes, toWireClass(l))
	}
	return w
}

// MarshalJSON encodes the document in the published {url, timetable} layout.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := wireDocument{URL: d.SourceURL, Timetable: make(map[string]wireGroup, len(d.Groups))}
	for id, g := range d.Groups {
		w.Timetable[id] = g.toWire()
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a published document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.SourceURL = w.URL
	d.Groups = make(map[string]GroupSchedule, len(w.Timetable))
	for id, wg := range w.Timetable {
		g := GroupSchedule{GroupID: id, Lessons: make([]Lesson, 0, len(wg.Classes))}
		for _, c := range wg.Classes {
			g.Lessons = append(g.Lessons, fromWireClass(c))
		}
		d.Groups[id] = g
	}
	return nil
}
