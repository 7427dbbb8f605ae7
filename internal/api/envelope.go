package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// emptyObject is the payload of a response with an empty body.
var emptyObject = json.RawMessage(`{}`)

// Unwrap turns a raw response body into the effective payload.
//
// An empty body decodes to {}. A JSON object with a non-empty string "body"
// field is treated as an envelope: the string is parsed as JSON and becomes
// the payload. If that inner parse fails, the outer object is returned
// unchanged. Anything that is not valid JSON at the outer level is an error.
func Unwrap(body []byte) (json.RawMessage, error) {
	payload, err := unwrap(body)
	if errors.Is(err, ErrMalformedEnvelope) {
		return payload, nil
	}
	return payload, err
}

// unwrap is Unwrap but reports ErrMalformedEnvelope alongside the outer
// payload so the client can log it.
func unwrap(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return emptyObject, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("decode response: body is not valid JSON")
	}

	// Arrays, strings, numbers and null cannot carry an envelope.
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return json.RawMessage(trimmed), nil
	}

	rawBody, ok := outer["body"]
	if !ok {
		return json.RawMessage(trimmed), nil
	}

	var inner string
	if err := json.Unmarshal(rawBody, &inner); err != nil || inner == "" {
		return json.RawMessage(trimmed), nil
	}

	if !json.Valid([]byte(inner)) {
		return json.RawMessage(trimmed), ErrMalformedEnvelope
	}
	return json.RawMessage(inner), nil
}

// remoteMessage extracts a human-readable message from an error response.
// It looks at "message", then "error" (string or {"message": ...}), first on
// the outer object and then on an unwrapped envelope.
func remoteMessage(body []byte) string {
	candidates := [][]byte{bytes.TrimSpace(body)}
	if inner, err := unwrap(body); err == nil && !bytes.Equal(inner, candidates[0]) {
		candidates = append(candidates, inner)
	}

	for _, c := range candidates {
		var fields map[string]any
		if err := json.Unmarshal(c, &fields); err != nil {
			continue
		}
		if msg, ok := fields["message"].(string); ok && msg != "" {
			return msg
		}
		switch v := fields["error"].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return ""
}
