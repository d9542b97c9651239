package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"timetable-go/internal/schedule"
	"timetable-go/internal/timetable"
)

func main() {
	file     := flag.String("file", "public/timetable_cse.json", "published timetable document")
	group    := flag.String("group", "", "group id, e.g. D2A1 (case and spaces ignored)")
	at       := flag.String("at", "", "reference time in RFC 3339 (default now)")
	duration := flag.Duration("duration", schedule.DefaultDuration, "length of one period")

	flag.Parse()

	if *group == "" {
		log.Fatal("missing -group")
	}
	ref := time.Now()
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			log.Fatalf("bad -at: %v", err)
		}
		ref = t
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	var doc timetable.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("decode %s: %v", *file, err)
	}
	g, ok := doc.Lookup(*group)
	if !ok {
		log.Fatalf("group %q not found in %s", *group, *file)
	}

	st := schedule.Resolver{Duration: *duration}.Resolve(g, ref)
	fmt.Printf("%s, %s %s\n", g.GroupID, ref.Weekday(), ref.Format("15:04"))
	fmt.Println("now: ", describe(st.Current))
	fmt.Println("next:", describe(st.Next))
}

func describe(l *timetable.Lesson) string {
	if l == nil {
		return "-"
	}
	switch l.Kind {
	case timetable.KindMulti:
		s := l.Period + " "
		for i, e := range l.Entries {
			if i > 0 {
				s += " | "
			}
			s += fmt.Sprintf("%s (%s, %s)", e.Subject, e.Teacher, e.Room)
		}
		return s
	}
	if l.Facets.OtherDepartment {
		return l.Period + " class with another department"
	}
	return fmt.Sprintf("%s %s (%s, %s)", l.Period, l.Entry.Subject, l.Entry.Teacher, l.Entry.Room)
}
