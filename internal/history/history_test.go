package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercoach/coach/internal/assessment"
)

func sample() []assessment.Assessment {
	return []assessment.Assessment{
		{
			SK:             "ASSESS#1",
			QuizScore:      66.66666,
			ImprovementTip: "Review closures.",
			CreatedAt:      "2024-03-05T14:07:00Z",
			Questions: []assessment.ReviewItem{
				{Question: "q1", Answer: "A", UserAnswer: "A. x", IsCorrect: true},
				{Question: "q2", Answer: "B", UserAnswer: "C. y", IsCorrect: false},
				{Question: "q3", Answer: "C", UserAnswer: "C. z", IsCorrect: true},
			},
		},
		{
			SK:        "ASSESS#2",
			QuizScore: 90,
			CreatedAt: "2024-03-07T09:30:00Z",
			Questions: []assessment.ReviewItem{{Question: "q1", IsCorrect: true}},
		},
		{SK: "ASSESS#3", QuizScore: 30, CreatedAt: "garbage"},
	}
}

func TestEntry_Derived(t *testing.T) {
	v := New(sample())
	e, ok := v.Entry(0)
	require.True(t, ok)

	assert.Equal(t, "Quiz 1", e.Label())
	assert.Equal(t, "66.7%", e.Percent())
	assert.Equal(t, "March 05, 2024 14:07", e.DateIn(time.UTC))
	assert.Equal(t, "Review closures.", e.Tip())
	assert.Equal(t, 2, e.CorrectCount())
	assert.Len(t, e.Review(), 3)

	now := time.Date(2024, 3, 8, 14, 7, 0, 0, time.UTC)
	assert.Equal(t, "3 days ago", e.Relative(now))

	bad, _ := v.Entry(2)
	assert.Equal(t, "", bad.DateIn(time.UTC))
	assert.Equal(t, "", bad.Relative(now))
	assert.Equal(t, "30.0%", bad.Percent())
}

func TestView_DoesNotMutateRecords(t *testing.T) {
	records := sample()
	v := New(records)
	entries := v.Entries()
	entries[0].Record.QuizScore = 0

	e, _ := v.Entry(0)
	assert.Equal(t, 66.66666, e.Record.QuizScore)
	assert.Equal(t, 66.66666, records[0].QuizScore)
}

func TestView_Inspect(t *testing.T) {
	v := New(sample())

	_, ok := v.Inspected()
	assert.False(t, ok)

	require.True(t, v.Inspect(1))
	e, ok := v.Inspected()
	require.True(t, ok)
	assert.Equal(t, "ASSESS#2", e.Record.ID())

	assert.False(t, v.Inspect(7))
	e, _ = v.Inspected()
	assert.Equal(t, "ASSESS#2", e.Record.ID(), "out of range keeps selection")

	v.Clear()
	_, ok = v.Inspected()
	assert.False(t, ok)

	empty := New(nil)
	assert.False(t, empty.Inspect(0))
	assert.True(t, empty.Empty())
}

func TestView_Stats(t *testing.T) {
	st := New(sample()).Stats()
	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, (66.66666+90+30)/3, st.Average, 1e-9)
	assert.Equal(t, 90.0, st.Best)
	assert.Equal(t, 90.0, st.Latest)
	assert.Equal(t, 4, st.TotalQuestions)

	assert.Equal(t, Stats{}, New(nil).Stats())

	noDates := New([]assessment.Assessment{{QuizScore: 10}, {QuizScore: 20}}).Stats()
	assert.Equal(t, 20.0, noDates.Latest)
}

func TestView_Trend(t *testing.T) {
	v := New(sample())
	trend := v.Trend()
	assert.Equal(t, []float64{30, 66.66666, 90}, trend)
	assert.Equal(t, v.Stats().Latest, trend[len(trend)-1])

	noDates := New([]assessment.Assessment{{QuizScore: 10}, {QuizScore: 20}})
	assert.Equal(t, []float64{10, 20}, noDates.Trend())

	newestFirst := New([]assessment.Assessment{
		{QuizScore: 80, CreatedAt: "2024-03-07T09:30:00Z"},
		{QuizScore: 40, CreatedAt: "2024-03-05T14:07:00Z"},
	})
	assert.Equal(t, []float64{40, 80}, newestFirst.Trend())

	assert.Empty(t, New(nil).Trend())
}

type stubSource struct {
	records []assessment.Assessment
	err     error
}

func (s stubSource) History(context.Context) ([]assessment.Assessment, error) {
	return s.records, s.err
}

func TestLoad(t *testing.T) {
	v, err := Load(context.Background(), stubSource{records: []assessment.Assessment{}})
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())

	boom := errors.New("boom")
	_, err = Load(context.Background(), stubSource{err: boom})
	assert.ErrorIs(t, err, boom)
}
