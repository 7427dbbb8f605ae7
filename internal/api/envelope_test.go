package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", `{}`},
		{"whitespace body", "  \n", `{}`},
		{"plain object", `{"questions":[{"question":"q"}]}`, `{"questions":[{"question":"q"}]}`},
		{"enveloped object", `{"body": "{\"questions\":[]}"}`, `{"questions":[]}`},
		{"enveloped with status", `{"statusCode":200,"headers":{},"body":"{\"quizScore\":80}"}`, `{"quizScore":80}`},
		{"enveloped array", `{"statusCode":200,"body":"[{\"sk\":\"ASSESS#1\"}]"}`, `[{"sk":"ASSESS#1"}]`},
		{"malformed inner", `{"body": "not json"}`, `{"body":"not json"}`},
		{"empty inner string", `{"body": ""}`, `{"body":""}`},
		{"non-string body field", `{"body": {"a":1}}`, `{"body":{"a":1}}`},
		{"top-level array", `[1,2]`, `[1,2]`},
		{"top-level null", `null`, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unwrap([]byte(tt.body))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestUnwrap_InvalidOuterJSON(t *testing.T) {
	_, err := Unwrap([]byte("<html>gateway timeout</html>"))
	require.Error(t, err)
}

func TestUnwrap_ReportsMalformedInternally(t *testing.T) {
	payload, err := unwrap([]byte(`{"body":"{oops"}`))
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
	assert.JSONEq(t, `{"body":"{oops"}`, string(payload))
}

func TestRemoteMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"Forbidden"}`, "Forbidden"},
		{"error string", `{"error":"Route not found: /x"}`, "Route not found: /x"},
		{"message wins over error", `{"message":"m","error":"e"}`, "m"},
		{"nested error object", `{"error":{"code":"UNAUTHORIZED","message":"Invalid token"}}`, "Invalid token"},
		{"enveloped error", `{"statusCode":500,"body":"{\"error\":\"boom\"}"}`, "boom"},
		{"no message", `{"status":"bad"}`, ""},
		{"not json", `oops`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remoteMessage([]byte(tt.body)))
		})
	}
}
