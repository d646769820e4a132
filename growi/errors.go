package growi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure into the closed taxonomy surfaced to the
// protocol layer. Callers never see raw HTTP status codes or transport
// exceptions, only one of these kinds plus a human-readable message.
type Kind string

const (
	// KindInvalidArgument means caller-supplied arguments failed local
	// validation. Never retried; the caller must correct the input.
	KindInvalidArgument Kind = "invalid_argument"

	// KindNotFound means the target page, attachment, user, or local file
	// does not exist.
	KindNotFound Kind = "not_found"

	// KindConflict means the operation would violate backend uniqueness,
	// such as creating a page at an occupied path.
	KindConflict Kind = "conflict"

	// KindAuth means the token was rejected or a required session
	// credential is absent. Fatal for the session; not auto-retried.
	KindAuth Kind = "auth"

	// KindTransport means the backend could not be reached at all.
	KindTransport Kind = "transport"

	// KindConfiguration means the endpoint configuration is invalid.
	// Raised at startup, before any network call.
	KindConfiguration Kind = "configuration"

	// KindBackend covers any backend failure not classified above.
	KindBackend Kind = "backend"
)

// Error is the normalized failure shape for every operation.
type Error struct {
	Kind    Kind
	Message string
	Status  int // backend HTTP status when applicable, 0 otherwise
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the error kind, or KindBackend for errors that did not
// pass through the normalizer.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindBackend
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func invalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func authErr(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

func configErr(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func transportErr(err error) *Error {
	return &Error{Kind: KindTransport, Message: "could not reach GROWI: " + err.Error()}
}

// FromResponse converts a non-success backend response into a normalized
// error. This is the only place that inspects raw HTTP status codes.
func FromResponse(status int, body []byte) *Error {
	msg := backendMessage(body)
	if msg == "" {
		msg = "GROWI API error"
	}

	kind := kindForStatus(status)
	if kind == KindBackend {
		kind = refineKind(kind, msg)
	}

	return &Error{Kind: kind, Message: msg, Status: status}
}

// FromMessage normalizes a failure the backend reported inside a 200
// response envelope (the v1 dialect answers {"ok": false, "error": ...}).
func FromMessage(msg string) *Error {
	if msg == "" {
		msg = "GROWI API error"
	}
	return &Error{Kind: refineKind(KindBackend, msg), Message: msg}
}

func kindForStatus(status int) Kind {
	switch status {
	case 401, 403:
		return KindAuth
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	default:
		return KindBackend
	}
}

// refineKind sharpens the classification using the backend's own error
// text. GROWI reports several conflict and not-found conditions with
// generic 4xx/5xx statuses, so the message is the only signal.
func refineKind(kind Kind, msg string) Kind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already exists"),
		strings.Contains(lower, "duplicate"),
		strings.Contains(lower, "child"):
		return KindConflict
	case strings.Contains(lower, "not found"),
		strings.Contains(lower, "notfound"),
		strings.Contains(lower, "is not exist"):
		return KindNotFound
	case strings.Contains(lower, "access token"),
		strings.Contains(lower, "credential"),
		strings.Contains(lower, "permission"),
		strings.Contains(lower, "forbidden"):
		return KindAuth
	default:
		return kind
	}
}

// backendMessage extracts a human-readable message from the error body
// shapes the two dialects produce.
func backendMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	// v1 shape: {"ok": false, "error": "message"} or {"error": {"message": ...}}
	var v1 struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &v1); err == nil && len(v1.Error) > 0 {
		if msg := decodeErrorValue(v1.Error); msg != "" {
			return msg
		}
	}

	// v3 shape: {"errors": [{"message": "...", "code": "..."}]}
	var v3 struct {
		Errors []struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &v3); err == nil && len(v3.Errors) > 0 {
		parts := make([]string, 0, len(v3.Errors))
		for _, e := range v3.Errors {
			if e.Message != "" {
				parts = append(parts, e.Message)
			} else if e.Code != "" {
				parts = append(parts, e.Code)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	return truncate(strings.TrimSpace(string(body)), 200)
}

// decodeErrorValue handles the "error" field being either a plain string
// or an object with a message.
func decodeErrorValue(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Message
	}
	return ""
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
