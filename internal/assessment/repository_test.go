package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	path   string
	body   any
}

// fakeTransport returns a canned payload or error and records each call.
type fakeTransport struct {
	payload string
	err     error
	calls   []call
}

func (f *fakeTransport) Do(_ context.Context, method, path string, body any) (json.RawMessage, error) {
	f.calls = append(f.calls, call{method, path, body})
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.payload), nil
}

func TestRepository_Generate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		ft := &fakeTransport{payload: `{"questions":[
			{"question":"Capital of France?","options":["A. Rome","B. Paris"],"correctAnswer":"B","explanation":"Paris."},
			{"question":"2+2?","options":["A. 4","B. 5"],"correctAnswer":"A"}
		]}`}
		set, err := NewRepository(ft).Generate(context.Background())
		require.NoError(t, err)
		require.Len(t, set, 2)
		assert.Equal(t, "Capital of France?", set[0].Text)
		assert.Equal(t, "B", set[0].CorrectAnswer)
		assert.Equal(t, "", set[1].Explanation)

		require.Len(t, ft.calls, 1)
		assert.Equal(t, http.MethodPost, ft.calls[0].method)
		assert.Equal(t, PathGenerate, ft.calls[0].path)
	})

	invalid := []struct {
		name    string
		payload string
	}{
		{"empty questions", `{"questions":[]}`},
		{"missing questions", `{}`},
		{"questions not array", `{"questions":"nope"}`},
		{"missing correct answer", `{"questions":[{"question":"q","options":["A. x"]}]}`},
		{"no options", `{"questions":[{"question":"q","options":[],"correctAnswer":"A"}]}`},
		{"array payload", `[]`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepository(&fakeTransport{payload: tt.payload}).Generate(context.Background())
			assert.ErrorIs(t, err, ErrGenerationFailed)
		})
	}

	t.Run("transport error passes through", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewRepository(&fakeTransport{err: boom}).Generate(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestRepository_Submit(t *testing.T) {
	set := QuizSet{
		{Text: "Capital of France?", Options: []string{"A. Rome", "B. Paris"}, CorrectAnswer: "B"},
		{Text: "2+2?", Options: []string{"A. 4", "B. 5"}, CorrectAnswer: "A"},
	}
	answers := AnswerRecord{Chose("B. Paris"), Chose("B. 5")}

	t.Run("success", func(t *testing.T) {
		ft := &fakeTransport{payload: `{"sk":"ASSESS#1","quizScore":50,"improvementTip":"Review arithmetic.","createdAt":"2024-03-05T14:07:00Z"}`}
		res, err := NewRepository(ft).Submit(context.Background(), set, answers, 50)
		require.NoError(t, err)

		assert.Equal(t, 50.0, res.Score)
		assert.Equal(t, []bool{true, false}, res.Correct)
		assert.Equal(t, "ASSESS#1", res.Record.ID())
		assert.Equal(t, "Review arithmetic.", res.Record.ImprovementTip)

		require.Len(t, ft.calls, 1)
		assert.Equal(t, PathSave, ft.calls[0].path)
		raw, err := json.Marshal(ft.calls[0].body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"questions":[
				{"question":"Capital of France?","options":["A. Rome","B. Paris"],"correctAnswer":"B","explanation":""},
				{"question":"2+2?","options":["A. 4","B. 5"],"correctAnswer":"A","explanation":""}
			],
			"userAnswers":["B. Paris","B. 5"],
			"score":50
		}`, string(raw))
	})

	t.Run("non-record payload kept raw", func(t *testing.T) {
		res, err := NewRepository(&fakeTransport{payload: `"ok"`}).Submit(context.Background(), set, answers, 50)
		require.NoError(t, err)
		assert.Equal(t, `"ok"`, string(res.Raw))
		assert.Empty(t, res.Record.ID())
	})

	t.Run("mistyped record dropped whole", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		ft := &fakeTransport{payload: `{"sk":"ASSESS#9","quizScore":"100","improvementTip":"tip"}`}
		res, err := NewRepository(ft, WithLogger(logger)).Submit(context.Background(), set, answers, 50)
		require.NoError(t, err)

		assert.Equal(t, Assessment{}, res.Record)
		assert.Equal(t, 50.0, res.Score)
		assert.Equal(t, []bool{true, false}, res.Correct)
		assert.Contains(t, logs.String(), "saved assessment record not decoded")
	})

	t.Run("failure wraps cause", func(t *testing.T) {
		boom := errors.New("Questions list cannot be empty")
		_, err := NewRepository(&fakeTransport{err: boom}).Submit(context.Background(), set, answers, 50)
		assert.ErrorIs(t, err, ErrSubmissionFailed)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRepository_History(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantErr bool
	}{
		{"list", `[{"sk":"ASSESS#1","quizScore":80},{"sk":"ASSESS#2","quizScore":60}]`, 2, false},
		{"empty list", `[]`, 0, false},
		{"empty object", `{}`, 0, false},
		{"null", `null`, 0, false},
		{"nothing", ``, 0, false},
		{"unexpected object", `{"items":[]}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{payload: tt.payload}
			got, err := NewRepository(ft).History(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedHistory)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
			assert.Equal(t, http.MethodGet, ft.calls[0].method)
			assert.Nil(t, ft.calls[0].body)
		})
	}

	t.Run("order preserved", func(t *testing.T) {
		got, err := NewRepository(&fakeTransport{payload: `[{"sk":"b"},{"sk":"a"}]`}).History(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "b", got[0].ID())
		assert.Equal(t, "a", got[1].ID())
	})
}
