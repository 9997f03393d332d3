package shared

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
)

// Kind classifies failures for callers.
type Kind string

// Error kinds.
const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
)

var (
	// ErrNotFound matches any NotFound error via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches any Validation error via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrConflict matches any Conflict error via errors.Is.
	ErrConflict = errors.New("conflict")
	// ErrStorage matches any Storage error via errors.Is.
	ErrStorage = errors.New("storage failure")
)

var kindSentinels = map[Kind]error{
	KindNotFound:   ErrNotFound,
	KindValidation: ErrValidation,
	KindConflict:   ErrConflict,
	KindStorage:    ErrStorage,
}

// Error is the structured failure returned by services.
type Error struct {
	Kind    Kind
	Message string
	// Invalid names the offending fields or references.
	Invalid []string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.Invalid) > 0 {
		msg += ": " + strings.Join(e.Invalid, ", ")
	}
	if e.Err != nil && e.Kind == KindStorage {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinel.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// NotFound reports a missing document.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation reports bad input, listing invalid fields or references.
func Validation(message string, invalid ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Invalid: invalid}
}

// Conflict reports a unique field collision.
func Conflict(message string, fields ...string) *Error {
	return &Error{Kind: KindConflict, Message: message, Invalid: fields}
}

// Storage wraps a failure of the underlying store.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage operation failed", Err: err}
}

// KindOf returns the kind of err, defaulting to storage for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// FromStore translates docstore failures into the error taxonomy. entity names
// the document type in messages.
func FromStore(err error, entity string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	var dup *docstore.DuplicateError
	switch {
	case errors.As(err, &dup):
		return &Error{
			Kind:    KindConflict,
			Message: fmt.Sprintf("%s with this %s already exists", entity, dup.Field),
			Invalid: []string{dup.Field},
			Err:     err,
		}
	case errors.Is(err, docstore.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: entity + " not found", Err: err}
	case errors.Is(err, docstore.ErrInvalidID):
		return &Error{Kind: KindStorage, Message: "malformed identifier", Err: err}
	}
	return Storage(err)
}
