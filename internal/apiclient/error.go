package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FallbackMessage is shown when neither the response body nor the error
// carries anything presentable.
const FallbackMessage = "Something went wrong"

var ErrEmptyPathParam = errors.New("path parameter is empty")

// Error is a non-2xx response. Message is taken from the body's "message"
// (or "error") field and stays empty when the body has neither.
type Error struct {
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = FallbackMessage
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

func newError(status int, body []byte) *Error {
	return &Error{
		Status:  status,
		Message: messageFromBody(body),
		Body:    body,
	}
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return m
		}
	}
	return ""
}

// Message returns the user-facing text for err: the API message when the
// response carried one, otherwise fallback (FallbackMessage when empty).
func Message(err error, fallback string) string {
	if fallback == "" {
		fallback = FallbackMessage
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0 for transport
// failures and non-API errors.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}
