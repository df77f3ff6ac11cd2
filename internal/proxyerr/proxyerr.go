// Package proxyerr defines the failure kinds a transcode request can end in
// and how each one is surfaced over HTTP.
package proxyerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindUpstream   Kind = "upstream"
	KindMediaType  Kind = "media_type"
	KindFetch      Kind = "fetch"
	KindTranscode  Kind = "transcode"
	KindUnknown    Kind = "unknown"
)

// Messages returned to callers for the recoverable kinds.
const (
	MsgMissingImage   = "Missing 'image' query parameter."
	MsgUpstreamStatus = "Error retrieving image from URL."
	MsgNotImage       = "URL is not image type."
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status is the HTTP status the kind maps to.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindUpstream, KindMediaType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Public is the response body for the kind. Only the 400 kinds expose their
// message; anything else gets the bare status text.
func (e *Error) Public() string {
	if e.Status() == http.StatusBadRequest {
		return e.Message
	}
	return http.StatusText(e.Status())
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind == kind
	}
	return false
}

// From returns the typed error in err's chain, or wraps err as KindUnknown.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var target *Error
	if errors.As(err, &target) {
		return target
	}
	return &Error{Kind: KindUnknown, Op: "unknown", Message: "unclassified failure", Cause: err}
}
