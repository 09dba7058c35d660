package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	MessageUnknown         = "Unknown error"
	MessageNetwork         = "Network error"
	MessageCanceled        = "Request canceled"
	MessageInvalidResponse = "Invalid response from server"
)

// maxErrorBody bounds how much of a failure body is read for its detail.
const maxErrorBody = 64 << 10

// Error is the only failure shape callers see. Error() is the human-readable
// message and nothing else; Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// StatusOf reports the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

func errorFromResponse(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: MessageUnknown, cause: err}
	}
	body := errorBody{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return &Error{Status: resp.StatusCode, Message: MessageUnknown}
	}
	if msg := detailMessage(body.Detail); msg != "" {
		return &Error{Status: resp.StatusCode, Message: msg}
	}
	return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP error: %d", resp.StatusCode)}
}

// detailMessage accepts both a plain string detail and the list of validation
// issues the backend returns for rejected input.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if m := strings.TrimSpace(issue.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
