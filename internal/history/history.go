// Package history projects past assessment records into display-ready
// entries. It never mutates the records it is given.
package history

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/careercoach/coach/internal/assessment"
)

// DateLayout renders a creation timestamp, e.g. "March 05, 2024 14:07".
const DateLayout = "January 02, 2006 15:04"

// Source supplies past assessments. *assessment.Repository implements it.
type Source interface {
	History(ctx context.Context) ([]assessment.Assessment, error)
}

// Entry is one past assessment with derived display fields.
type Entry struct {
	// Index is the zero-based position in the backend's list.
	Index  int
	Record assessment.Assessment
}

// Label returns "Quiz N" with N one-based.
func (e Entry) Label() string {
	return fmt.Sprintf("Quiz %d", e.Index+1)
}

// Percent renders the score with one decimal, e.g. "66.7%".
func (e Entry) Percent() string {
	return fmt.Sprintf("%.1f%%", e.Record.QuizScore)
}

// Date renders the creation time in local time, or "" when unknown.
func (e Entry) Date() string {
	return e.DateIn(time.Local)
}

// DateIn renders the creation time in loc, or "" when unknown.
func (e Entry) DateIn(loc *time.Location) string {
	t, ok := e.Record.Created()
	if !ok {
		return ""
	}
	return t.In(loc).Format(DateLayout)
}

// Relative renders the creation time relative to now, e.g. "3 days ago".
func (e Entry) Relative(now time.Time) string {
	t, ok := e.Record.Created()
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Tip returns the improvement tip, if any.
func (e Entry) Tip() string {
	return e.Record.ImprovementTip
}

// Review returns the per-question review rows.
func (e Entry) Review() []assessment.ReviewItem {
	return e.Record.Questions
}

// CorrectCount returns the number of correctly answered review rows.
func (e Entry) CorrectCount() int {
	n := 0
	for _, q := range e.Record.Questions {
		if q.IsCorrect {
			n++
		}
	}
	return n
}

// Stats aggregates a history list.
type Stats struct {
	Count          int
	Average        float64
	Best           float64
	Latest         float64
	TotalQuestions int
}

// View is a read-only projection of a history list with an optional
// inspected entry. The zero value is an empty view.
type View struct {
	entries   []Entry
	inspected int
	hasFocus  bool
}

// New builds a view over records, keeping their order.
func New(records []assessment.Assessment) *View {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Index: i, Record: r}
	}
	return &View{entries: entries}
}

// Load fetches history from src and builds a view.
func Load(ctx context.Context, src Source) (*View, error) {
	records, err := src.History(ctx)
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

// Len returns the number of entries.
func (v *View) Len() int {
	return len(v.entries)
}

// Empty reports whether there are no entries.
func (v *View) Empty() bool {
	return len(v.entries) == 0
}

// Entries returns a copy of all entries.
func (v *View) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Entry returns entry i.
func (v *View) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(v.entries) {
		return Entry{}, false
	}
	return v.entries[i], true
}

// Inspect selects entry i for detail display. It reports false and leaves
// the selection unchanged when i is out of range.
func (v *View) Inspect(i int) bool {
	if i < 0 || i >= len(v.entries) {
		return false
	}
	v.inspected = i
	v.hasFocus = true
	return true
}

// Clear drops the inspected entry.
func (v *View) Clear() {
	v.inspected = 0
	v.hasFocus = false
}

// Inspected returns the inspected entry, if any.
func (v *View) Inspected() (Entry, bool) {
	if !v.hasFocus {
		return Entry{}, false
	}
	return v.entries[v.inspected], true
}

// Stats computes aggregates over all entries. Latest is the score of the
// entry with the newest creation time; entries without a parseable time
// fall back to list order.
func (v *View) Stats() Stats {
	var st Stats
	if len(v.entries) == 0 {
		return st
	}

	var (
		sum        float64
		latestAt   time.Time
		haveLatest bool
	)
	st.Count = len(v.entries)
	st.Latest = v.entries[len(v.entries)-1].Record.QuizScore
	for i, e := range v.entries {
		score := e.Record.QuizScore
		sum += score
		if i == 0 || score > st.Best {
			st.Best = score
		}
		st.TotalQuestions += len(e.Record.Questions)
		if t, ok := e.Record.Created(); ok && (!haveLatest || t.After(latestAt)) {
			latestAt = t
			haveLatest = true
			st.Latest = score
		}
	}
	st.Average = sum / float64(st.Count)
	return st
}

// Trend returns the scores ordered oldest to newest. Entries without a
// parseable creation time come first, in list order, so the last point
// agrees with Stats().Latest.
func (v *View) Trend() []float64 {
	type point struct {
		at    time.Time
		timed bool
		score float64
	}
	points := make([]point, len(v.entries))
	for i, e := range v.entries {
		at, ok := e.Record.Created()
		points[i] = point{at: at, timed: ok, score: e.Record.QuizScore}
	}
	slices.SortStableFunc(points, func(a, b point) int {
		switch {
		case a.timed != b.timed:
			if a.timed {
				return 1
			}
			return -1
		case !a.timed:
			return 0
		}
		return a.at.Compare(b.at)
	})

	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.score
	}
	return out
}
