package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a non-success reply from the backend. Message is empty when the
// reply carried none.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, msg)
}

// Unauthorized reports whether the backend rejected the auth token.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// ParseError is returned when a reply does not have the expected shape.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("backend: unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError wraps failures to reach the backend at all.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend: %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// errorBody covers the error shapes the backend is known to send.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func messageFrom(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Error != "":
		return body.Error
	case len(body.Errors) > 0:
		return body.Errors[0].Msg
	}
	return ""
}
