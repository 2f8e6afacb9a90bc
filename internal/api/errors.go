package api

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of failure categories the API boundary produces.
// Every error leaving this package is an *Error carrying exactly one Kind.
type Kind int

const (
	// KindNetwork covers transport failures: timeouts, refused connections,
	// unreadable or undecodable responses.
	KindNetwork Kind = iota + 1
	// KindHTTP covers 4xx/5xx responses from the backend.
	KindHTTP
	// KindStorage covers faults of the local durable store surfaced through
	// API-adjacent flows.
	KindStorage
	// KindValidation covers client-side request validation failures.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindStorage:
		return "storage"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// genericMessage is the fallback shown when a failure carries no usable
// server message.
const genericMessage = "An unexpected error occurred"

// Error is the single normalized error shape all callers of the API layer
// observe: an HTTP-ish status, a human-readable message, and an optional
// server error code.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%d): %s [%s]", e.Kind, e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// serverError is the error body the backend sends alongside 4xx/5xx.
type serverError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// newHTTPError normalizes an HTTP error response: the server-provided
// message and code when the body carries them, a generic per-status message
// otherwise.
func newHTTPError(status int, body []byte) *Error {
	var se serverError
	_ = json.Unmarshal(body, &se)

	msg := se.Message
	if msg == "" {
		msg = se.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}

	return &Error{Kind: KindHTTP, Status: status, Code: se.Code, Message: msg}
}

// newNetworkError normalizes a transport-level failure.
func newNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Status: 500, Message: genericMessage, err: err}
}

// NewValidationError wraps a client-side validation failure in the
// normalized shape.
func NewValidationError(err error) *Error {
	return &Error{Kind: KindValidation, Status: 400, Message: err.Error(), err: err}
}

// NewStorageError wraps a durable-store fault in the normalized shape.
func NewStorageError(err error) *Error {
	return &Error{Kind: KindStorage, Status: 500, Message: genericMessage, err: err}
}
