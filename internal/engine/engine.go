// Package engine turns one department's timetable page into a Document. It
// runs locator, axis reader, classifier, tagger, section expander and
// assembler in order and never performs I/O.
package engine

import (
	"errors"
	"fmt"

	"timetable-go/internal/config"
	"timetable-go/internal/lesson"
	"timetable-go/internal/parser"
	"timetable-go/internal/schedule"
	"timetable-go/internal/section"
	"timetable-go/internal/timetable"
)

// ErrNoTables is returned when a page yields no labelled timetable table.
var ErrNoTables = errors.New("engine: no timetable tables located")

// Report collects the conditions the engine recovered from.
type Report struct {
	Title         string
	TablesLocated int
	Misses        []parser.Miss
	Shapes        map[timetable.Shape]int
	Unexpanded    []string // labels used verbatim as group ids
	RowsDropped   int
	FreeGroups    []string // all-free groups kept out of Discovered
}

// Result is the output of one extraction.
type Result struct {
	Document *timetable.Document
	// Discovered lists the group ids to append to the department's
	// registry, in first-seen order.
	Discovered []string
	Report     Report
}

// Engine extracts timetables for one department.
type Engine struct {
	dept       config.Department
	locator    parser.Locator
	classifier parser.Classifier
	tagger     lesson.Tagger
	pattern    *section.Pattern
}

// New builds an engine for dept.
func New(dept config.Department) (*Engine, error) {
	if !dept.Strategy.Valid() {
		return nil, fmt.Errorf("engine %s: unknown strategy %q", dept.Name, dept.Strategy)
	}
	p, err := dept.Pattern()
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", dept.Name, err)
	}
	return &Engine{
		dept:       dept,
		locator:    parser.Locator{Strategy: dept.Strategy, AnchorSelector: dept.AnchorSelector},
		classifier: parser.Classifier{ClassedCells: dept.ClassedCells},
		tagger:     lesson.Default,
		pattern:    p,
	}, nil
}

// WithTagger replaces the facet predicates.
func (e *Engine) WithTagger(t lesson.Tagger) *Engine {
	e.tagger = t
	return e
}

// Extract parses htmlBody fetched from url. Unlabelled tables, malformed
// rows and unrecognised cells are recovered from and recorded in the
// report; only a page with no usable table is an error.
func (e *Engine) Extract(htmlBody []byte, url string) (*Result, error) {
	doc, err := parser.Load(htmlBody)
	if err != nil {
		return nil, err
	}

	rep := Report{Title: parser.Title(doc), Shapes: make(map[timetable.Shape]int)}
	located, misses := e.locator.Locate(doc)
	rep.Misses = misses
	rep.TablesLocated = len(located)
	if len(located) == 0 {
		return &Result{Document: timetable.NewDocument(url), Report: rep}, ErrNoTables
	}

	var groups []timetable.GroupSchedule
	for _, loc := range located {
		raw := parser.ReadAxes(loc, e.dept.PeriodLabels)
		rep.RowsDropped += raw.Dropped

		lessons := e.lessons(raw, &rep)
		expanded, ok := section.Expand(e.pattern, raw.Label, lessons)
		if !ok && e.pattern != nil {
			rep.Unexpanded = append(rep.Unexpanded, raw.Label)
		}
		groups = append(groups, expanded...)
	}

	document, ids := schedule.Assemble(url, groups)
	discovered := ids
	if e.dept.SkipFreeGroups {
		discovered = discovered[:0:0]
		for _, id := range ids {
			if schedule.AllFree(document.Groups[id]) {
				rep.FreeGroups = append(rep.FreeGroups, id)
				continue
			}
			discovered = append(discovered, id)
		}
	}
	return &Result{Document: document, Discovered: discovered, Report: rep}, nil
}

// lessons classifies and tags every cell of raw, period by period.
func (e *Engine) lessons(raw parser.RawTable, rep *Report) []timetable.Lesson {
	out := make([]timetable.Lesson, 0, len(raw.Rows)*len(raw.Days))
	for _, row := range raw.Rows {
		for i, td := range row.Cells {
			cell := e.classifier.Classify(td)
			rep.Shapes[cell.Shape]++
			out = append(out, e.tagger.Tag(raw.Days[i], row.Period, cell))
		}
	}
	return out
}
