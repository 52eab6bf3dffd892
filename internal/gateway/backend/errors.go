package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"delivery-relay/internal/apperr"
)

// StatusError is a non-2xx reply, or a 2xx envelope with success=false.
// It unwraps to the apperr sentinel matching the status code.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Code, msg)
}

func (e *StatusError) Unwrap() error { return e.Err }

func newStatusError(method, path string, code int, raw []byte) *StatusError {
	return &StatusError{
		Method:  method,
		Path:    path,
		Code:    code,
		Message: messageFrom(raw),
		Err:     sentinelFor(code),
	}
}

func sentinelFor(code int) error {
	switch {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return apperr.ErrInvalid
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return apperr.ErrUnauthorized
	case code == http.StatusNotFound:
		return apperr.ErrNotFound
	case code == http.StatusConflict:
		return apperr.ErrConflict
	default:
		return apperr.ErrUpstream
	}
}

// messageFrom extracts "message" or "error" from a JSON body, falling back
// to the raw text.
func messageFrom(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// IsRetryable reports whether err is a transient backend failure:
// a transport error, 429 or any 5xx.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= http.StatusInternalServerError
	}
	return errors.Is(err, apperr.ErrUpstream)
}
