package assessment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"B. Paris", "B"},
		{" C . Rome", "C"},
		{"D", "D"},
		{"A. 3.14", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLabel(tt.in), "ParseLabel(%q)", tt.in)
	}
}

func TestGrade(t *testing.T) {
	set := QuizSet{
		{Text: "Capital of France?", Options: []string{"A. Rome", "B. Paris"}, CorrectAnswer: "B"},
		{Text: "2+2?", Options: []string{"A. 4", "B. 5"}, CorrectAnswer: "A"},
		{Text: "Case?", Options: []string{"a. lower", "A. upper"}, CorrectAnswer: "A"},
	}

	t.Run("mixed", func(t *testing.T) {
		answers := AnswerRecord{Chose("B. Paris"), {}, Chose("a. lower")}
		assert.Equal(t, []bool{true, false, false}, Grade(set, answers))
	})

	t.Run("short record", func(t *testing.T) {
		answers := AnswerRecord{Chose("B. Paris")}
		assert.Equal(t, []bool{true, false, false}, Grade(set, answers))
	})

	t.Run("empty set", func(t *testing.T) {
		assert.Empty(t, Grade(nil, nil))
	})
}

func TestAnswerRecord_With(t *testing.T) {
	r := NewAnswerRecord(2)
	next := r.With(1, "A. 4")

	assert.False(t, r.Answered(1), "original record must be untouched")
	assert.True(t, next.Answered(1))
	assert.Equal(t, 1, next.AnsweredCount())
	assert.False(t, next.Answered(5))
	assert.False(t, next.Answered(-1))
}

func TestAnswer_JSON(t *testing.T) {
	raw, err := json.Marshal(AnswerRecord{Chose("B. Paris"), {}})
	require.NoError(t, err)
	assert.JSONEq(t, `["B. Paris", null]`, string(raw))

	var back AnswerRecord
	require.NoError(t, json.Unmarshal([]byte(`["A. 4", null, ""]`), &back))
	require.Len(t, back, 3)
	assert.Equal(t, Chose("A. 4"), back[0])
	assert.False(t, back[1].Answered)
	assert.False(t, back[2].Answered)
}

func TestAssessment_Created(t *testing.T) {
	a := Assessment{CreatedAt: "2024-03-05T14:07:00.123Z"}
	ts, ok := a.Created()
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = Assessment{CreatedAt: "yesterday"}.Created()
	assert.False(t, ok)

	_, ok = Assessment{}.Created()
	assert.False(t, ok)
}
