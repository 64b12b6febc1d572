package skillswapsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	genericErrorMessage = "something went wrong"
	networkErrorMessage = "network error: no response from server"
	timeoutErrorMessage = "request timed out"
)

// APIError is the normalized failure of a call.
// StatusCode is 0 when no response was received.
type APIError struct {
	StatusCode int
	Detail     string
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("api error: %s: %v", e.Detail, e.Err)
		}
		return "api error: " + e.Detail
	}
	return fmt.Sprintf("api error: status=%d detail=%s", e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error { return e.Err }

// Unauthorized reports whether the backend answered 401.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func transportError(err error) *APIError {
	msg := networkErrorMessage
	if errors.Is(err, context.DeadlineExceeded) {
		msg = timeoutErrorMessage
	}
	return &APIError{Detail: msg, Err: err}
}

func statusError(resp *Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Detail:     detailMessage(resp.Body),
		Body:       string(resp.Body),
	}
}

// detailMessage reads the conventional "detail" field of an error body.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return genericErrorMessage
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return genericErrorMessage
		}
		return s
	}
	// Validation failures list {"msg": ...} entries.
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return genericErrorMessage
}
