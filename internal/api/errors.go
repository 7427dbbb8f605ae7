package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated indicates no usable bearer credential was available.
// The request was never sent.
var ErrUnauthenticated = errors.New("not signed in: please sign in again")

// ErrMalformedEnvelope indicates a response carried a string "body" field
// that was not valid JSON. It is never returned to callers of Client.Do:
// the outer object is used as the payload instead.
var ErrMalformedEnvelope = errors.New("malformed response envelope")

// RemoteError is returned when the backend answers with a non-2xx status.
type RemoteError struct {
	StatusCode int
	// Message is the server-supplied message, or "status N" when the
	// response carried none.
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// IsStatus reports whether err is a RemoteError with the given status code.
func IsStatus(err error, code int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == code
}

func newRemoteError(status int, message string) *RemoteError {
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return &RemoteError{StatusCode: status, Message: message}
}
