package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnavailable marks requests rejected because the circuit breaker is
// open; the backend is considered down until the probe succeeds.
var ErrUnavailable = errors.New("backend unavailable")

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// newError reads an error response body. The backend reports errors as
// {"error": "..."} or {"detail": "..."}; anything else is carried verbatim.
func newError(resp *http.Response) *Error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return &Error{StatusCode: resp.StatusCode}
	}

	var parsed struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Error != "" {
			return &Error{StatusCode: resp.StatusCode, Message: parsed.Error}
		}
		if parsed.Detail != "" {
			return &Error{StatusCode: resp.StatusCode, Message: parsed.Detail}
		}
	}
	return &Error{StatusCode: resp.StatusCode, Message: string(body)}
}
