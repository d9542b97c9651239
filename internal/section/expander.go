// Package section expands a timetable's section label into the subgroup ids
// students know, and slices batch lessons so each subgroup sees only its own.
package section

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"timetable-go/internal/timetable"
)

// MinSubgroups is the number of batches assumed when no lesson shows more.
const MinSubgroups = 2

// DefaultExpr matches labels such as "D2 CS A".
const DefaultExpr = `^(?i)(?P<year>D\d+)\s+[A-Z]+\s+(?P<section>[A-Z])$`

// DefaultFormat renders "D2 CS A" batch 1 as "D2A1".
const DefaultFormat = "{year}{section}{n}"

// Pattern recognises a section label and renders its subgroup ids.
// The expression must capture "year" and "section"; the format may use
// {year}, {section} and {n}.
type Pattern struct {
	re     *regexp.Regexp
	format string
}

// Compile builds a Pattern.
func Compile(expr, format string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("section pattern: %w", err)
	}
	if re.SubexpIndex("year") < 0 || re.SubexpIndex("section") < 0 {
		return nil, fmt.Errorf("section pattern %q must capture year and section", expr)
	}
	if !strings.Contains(format, "{n}") {
		return nil, fmt.Errorf("section format %q must contain {n}", format)
	}
	return &Pattern{re: re, format: format}, nil
}

// MustCompile is Compile for patterns known to be valid.
func MustCompile(expr, format string) *Pattern {
	p, err := Compile(expr, format)
	if err != nil {
		panic(err)
	}
	return p
}

// Default is the pattern used when a department names none.
var Default = MustCompile(DefaultExpr, DefaultFormat)

// IDs returns the n subgroup ids for label, or false if label does not
// match.
func (p *Pattern) IDs(label string, n int) ([]string, bool) {
	if p == nil {
		return nil, false
	}
	m := p.re.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return nil, false
	}
	year := strings.ToUpper(m[p.re.SubexpIndex("year")])
	sec := strings.ToUpper(m[p.re.SubexpIndex("section")])

	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		r := strings.NewReplacer("{year}", year, "{section}", sec, "{n}", strconv.Itoa(i))
		ids = append(ids, r.Replace(p.format))
	}
	return ids, true
}

func isBatch(l timetable.Lesson) bool {
	return l.Kind == timetable.KindMulti && (l.Facets.Lab || l.Facets.Tutorial)
}

// MaxSubgroups returns the largest batch count among lab and tutorial
// lessons, never less than MinSubgroups.
func MaxSubgroups(lessons []timetable.Lesson) int {
	n := MinSubgroups
	for _, l := range lessons {
		if isBatch(l) && len(l.Entries) > n {
			n = len(l.Entries)
		}
	}
	return n
}

// Slice returns a deep copy of lessons as seen by batch index (0-based):
// every lab or tutorial batch lesson keeps only that batch's entry, or none
// when the slot has fewer batches. Other lessons are copied unchanged.
func Slice(lessons []timetable.Lesson, index int) []timetable.Lesson {
	out := make([]timetable.Lesson, len(lessons))
	for i, l := range lessons {
		c := l.Clone()
		if isBatch(c) {
			if index >= 0 && index < len(c.Entries) {
				c.Entries = []timetable.Entry{c.Entries[index]}
			} else {
				c.Entries = []timetable.Entry{}
			}
		}
		out[i] = c
	}
	return out
}

// Expand splits one table's lessons into per-subgroup schedules. A label the
// pattern does not recognise (or a nil pattern) yields a single schedule
// under the label itself, unsliced. The bool reports whether the label was
// expanded.
func Expand(p *Pattern, label string, lessons []timetable.Lesson) ([]timetable.GroupSchedule, bool) {
	ids, ok := p.IDs(label, MaxSubgroups(lessons))
	if !ok {
		g := timetable.GroupSchedule{GroupID: strings.TrimSpace(label), Lessons: lessons}
		return []timetable.GroupSchedule{g.Clone()}, false
	}
	out := make([]timetable.GroupSchedule, len(ids))
	for i, id := range ids {
		out[i] = timetable.GroupSchedule{GroupID: id, Lessons: Slice(lessons, i)}
	}
	return out, true
}
