package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the transport layer can map it
// to a status code without string matching.
type Kind int

const (
	// Validation covers uniqueness and format violations on write.
	Validation Kind = iota
	// Authentication covers missing/invalid identity and wrong credentials.
	Authentication
	// NotFound covers lookups that yield nothing where the operation
	// contract demands a hard failure.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Authentication:
		return "authentication"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a tagged application error: a kind, a message and an optional
// field name identifying which input violated a constraint.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %q)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidation reports a constraint violation on the named field.
func NewValidation(field, message string) *Error {
	return &Error{Kind: Validation, Field: field, Message: message}
}

// NewAuthentication reports a missing or invalid identity.
func NewAuthentication(message string) *Error {
	return &Error{Kind: Authentication, Message: message}
}

// NewNotFound reports a lookup that found nothing.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// KindOf unwraps err and returns its Kind. The boolean is false when err
// is not an application error.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
