package service

import (
	"errors"
)

// Error kinds. Handlers classify failures with errors.Is against these.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
)

// Error is a failure with a message that is safe to show the shopkeeper.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Message returns the user-facing message.
func (e *Error) Message() string { return e.msg }

// Invalid returns a validation failure carrying msg.
func Invalid(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

func notFound(msg string) error { return &Error{kind: ErrNotFound, msg: msg} }

// PublicMessage returns the user-facing message carried by err, if any.
// Storage failures carry none and must be reported generically.
func PublicMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.msg, true
	}
	return "", false
}
