package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RequestError is the single failure kind of the client. Network failures
// and error responses both end up here; Message is what the user sees.
type RequestError struct {
	Status  int // 0 when no response was received
	Message string
	cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap returns the transport or decoding error behind e, if any.
func (e *RequestError) Unwrap() error {
	return e.cause
}

// Message returns the user-facing message of err. Wrapped RequestErrors
// yield their own message, anything else its Error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}

// IsStatus reports whether err is a RequestError with the given status.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}

func transportError(err error) *RequestError {
	return &RequestError{Message: err.Error(), cause: err}
}

// responseError builds the error for a non-2xx response. The message is
// the body's "error" field; when the body is not JSON, the status text;
// when neither yields anything, "Request failed: <code>".
func responseError(resp *http.Response, body []byte) *RequestError {
	var msg string
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		msg = statusText(resp)
	} else if m, ok := payload.(map[string]any); ok {
		if s, ok := m["error"].(string); ok {
			msg = s
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("Request failed: %d", resp.StatusCode)
	}
	return &RequestError{Status: resp.StatusCode, Message: msg}
}

// statusText returns the reason phrase of the status line.
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	return strings.TrimSpace(text)
}
