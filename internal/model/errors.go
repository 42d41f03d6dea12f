package model

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on category instead of
// inspecting message strings.
type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindDuplicateIdentity  Kind = "duplicate_identity"
	KindValidation         Kind = "validation"
	KindSessionLookup      Kind = "session_lookup"
	KindPartialWrite       Kind = "partial_write"
	KindNotFound           Kind = "not_found"
	KindUnauthorized       Kind = "unauthorized"
	KindTransport          Kind = "transport"
)

// Error is the tagged failure returned across this layer's boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain, or
// KindTransport when the error carries no kind at all.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}

// IsKind reports whether any error in the chain carries the given kind.
// A compensation failure wraps its cause, so for example a failed document
// write after an asset upload matches both KindPartialWrite and the kind of
// the underlying write error.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
