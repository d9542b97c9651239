package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"timetable-go/internal/timetable"
)

// DefaultDuration is the department's standard period length.
const DefaultDuration = 50 * time.Minute

var clock = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// StartMinute parses the first HH:MM in a period label into minutes after
// midnight.
func StartMinute(period string) (int, bool) {
	m := clock.FindStringSubmatch(period)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return 0, false
	}
	return h*60 + mm, true
}

// SameDay reports whether a day-axis label names weekday. Labels may be full
// names or abbreviations ("Monday", "MON", "Mo").
func SameDay(label string, weekday time.Weekday) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	w := strings.ToLower(weekday.String())
	if l == "" {
		return false
	}
	return strings.Contains(l, w) || (len(l) >= 2 && strings.HasPrefix(w, l))
}

// Status is the answer to "what is on now".
type Status struct {
	Current *timetable.Lesson
	Next    *timetable.Lesson
}

// Resolver computes the current and next lesson of a group. It holds no
// state between calls.
type Resolver struct {
	// Duration of every lesson; zero means DefaultDuration.
	Duration time.Duration
}

// Resolve uses DefaultDuration.
func Resolve(g timetable.GroupSchedule, at time.Time) Status {
	return Resolver{}.Resolve(g, at)
}

type slot struct {
	start  int
	lesson *timetable.Lesson
}

// Resolve finds the lesson running at `at` and the one after it. When none
// is running, Next is the first lesson starting later that day. Free slots
// are ignored.
func (r Resolver) Resolve(g timetable.GroupSchedule, at time.Time) Status {
	dur := r.Duration
	if dur <= 0 {
		dur = DefaultDuration
	}
	length := int(dur / time.Minute)
	now := at.Hour()*60 + at.Minute()

	var today []slot
	for i := range g.Lessons {
		l := &g.Lessons[i]
		if l.Facets.Free || !SameDay(l.Day, at.Weekday()) {
			continue
		}
		start, ok := StartMinute(l.Period)
		if !ok {
			continue
		}
		today = append(today, slot{start: start, lesson: l})
	}
	sort.SliceStable(today, func(i, j int) bool { return today[i].start < today[j].start })

	var st Status
	for i, s := range today {
		if s.start <= now && now < s.start+length {
			st.Current = s.lesson
			if i+1 < len(today) {
				st.Next = today[i+1].lesson
			}
			return st
		}
		if s.start > now {
			st.Next = s.lesson
			return st
		}
	}
	return st
}
