// Package apierr defines the error taxonomy for everything that crosses the
// API boundary: network failures, auth failures, validation rejections,
// missing resources and generic server errors. Callers branch on Kind (or
// errors.Is against the sentinels) instead of inspecting status codes.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindNetwork      Kind = "NETWORK"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindServer       Kind = "SERVER"
)

// Sentinels for errors.Is checks.
var (
	ErrUnauthorized = New(KindUnauthorized, "authentication required", nil)
	ErrForbidden    = New(KindForbidden, "not allowed", nil)
	ErrNotFound     = New(KindNotFound, "resource not found", nil)
)

type Error struct {
	Kind    Kind
	Message string
	Status  int // HTTP status, 0 for transport-level failures
	Err     error
	stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets the sentinels match any error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func (e *Error) Stack() []byte {
	return e.stack
}

func New(kind Kind, message string, err error) *Error {
	var stack []byte
	if stackErr, ok := err.(*goerrors.Error); ok {
		stack = stackErr.Stack()
	} else if err != nil {
		stack = goerrors.Wrap(err, 2).Stack()
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		stack:   stack,
	}
}

func Network(message string, err error) *Error {
	return New(KindNetwork, message, err)
}

// FromStatus maps an HTTP status code onto the taxonomy. The message is
// whatever the backend put in its error body, which is often the only
// user-presentable text we have.
func FromStatus(status int, message string) *Error {
	var kind Kind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusForbidden:
		kind = KindForbidden
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = KindValidation
	default:
		kind = KindServer
	}
	e := New(kind, message, nil)
	e.Status = status
	return e
}

// KindOf extracts the taxonomy kind, defaulting to KindServer for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}
