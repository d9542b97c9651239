package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"timetable-go/internal/timetable"
)

func testDocument(subject string) *timetable.Document {
	doc := timetable.NewDocument("https://cse.example.edu/tt.html")
	doc.Groups["D2A1"] = timetable.GroupSchedule{
		GroupID: "D2A1",
		Lessons: []timetable.Lesson{{
			Day: "Monday", Period: "08:30", Kind: timetable.KindSingle,
			Entry: timetable.Entry{Subject: subject, Teacher: "Dr. Rao", Room: "204"},
		}},
	}
	return doc
}

func TestWriteJSONReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "public", "timetable_cse.json")

	if err := WriteJSON(path, testDocument("first")); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(path, testDocument("second")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc timetable.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if got := doc.Groups["D2A1"].Lessons[0].Entry.Subject; got != "second" {
		t.Fatalf("subject = %q, want second", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteJSONEncodeFailureKeepsOldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(path, []string{"D2A1"}); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(path, map[string]any{"bad": make(chan int)}); err == nil {
		t.Fatal("expected encode error")
	}
	data, _ := os.ReadFile(path)
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil || !reflect.DeepEqual(ids, []string{"D2A1"}) {
		t.Fatalf("old file damaged: %s", data)
	}
}

func TestArchive(t *testing.T) {
	ctx := context.Background()
	a, err := OpenArchive(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if _, err := a.Latest(ctx, "cse"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("Latest on empty archive: %v", err)
	}

	at := time.UnixMilli(time.Now().UnixMilli())
	for i, subject := range []string{"first", "second"} {
		snap := Snapshot{RunID: "run-" + subject, Department: "cse", FetchedAt: at.Add(time.Duration(i) * time.Minute), Document: testDocument(subject)}
		if err := a.Save(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Save(ctx, Snapshot{RunID: "run-x", Department: "it", FetchedAt: at, Document: testDocument("other")}); err != nil {
		t.Fatal(err)
	}

	n, err := a.Count(ctx, "cse")
	if err != nil || n != 2 {
		t.Fatalf("Count = %d, %v; want 2", n, err)
	}

	snap, err := a.Latest(ctx, "cse")
	if err != nil {
		t.Fatal(err)
	}
	if snap.RunID != "run-second" || !snap.FetchedAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("latest = %s at %v", snap.RunID, snap.FetchedAt)
	}
	if !reflect.DeepEqual(snap.Document, testDocument("second")) {
		t.Fatalf("document round trip differs: %+v", snap.Document)
	}
}

func TestNoopMongoStore(t *testing.T) {
	s, err := New(context.Background(), "", "", false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), Snapshot{Department: "cse", Document: testDocument("x")}); err != nil {
		t.Fatalf("no-op save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}
