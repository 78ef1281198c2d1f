package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so the HTTP boundary can translate it
// without inspecting feature-specific sentinels.
type Kind int

const (
	// Internal is the fallback for unclassified failures.
	Internal Kind = iota
	// Validation covers malformed or missing request input.
	Validation
	// Authentication covers missing or unverifiable credentials.
	Authentication
	// Authorization covers a verified identity lacking role or ownership.
	Authorization
	// NotFound covers references to entities that do not resolve.
	NotFound
	// Conflict covers duplicate unique fields on creation.
	Conflict
	// Upstream covers remote media-store failures.
	Upstream
)

// Error pairs a Kind with a caller-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a classified error with a static message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error while keeping it in the chain.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf extracts the caller-facing message, defaulting to a generic one.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// IsKind reports whether the error chain carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
