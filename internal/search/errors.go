// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "errors"

// Kind classifies why a fetch did not produce a response.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingConfiguration
	KindFixtureNotFound
	KindTransport
	KindUpstream
	KindValidation
	KindInvalidPayload
)

func (k Kind) String() string {
	switch k {
	case KindMissingConfiguration:
		return "missing_configuration"
	case KindFixtureNotFound:
		return "fixture_not_found"
	case KindTransport:
		return "transport_error"
	case KindUpstream:
		return "upstream_error"
	case KindValidation:
		return "validation_error"
	case KindInvalidPayload:
		return "invalid_payload"
	default:
		return "error"
	}
}

// Error is the structured failure returned by Fetch and ValidateQuery.
type Error struct {
	Kind    Kind
	Message string

	// Status is the upstream HTTP status for KindUpstream.
	Status int

	// Details carries the upstream body for diagnostics, when there is one.
	Details string

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingConfiguration = &Error{Kind: KindMissingConfiguration, Message: "missing configuration"}
	ErrFixtureNotFound      = &Error{Kind: KindFixtureNotFound, Message: "fixture not found"}
	ErrTransport            = &Error{Kind: KindTransport, Message: "transport error"}
	ErrUpstream             = &Error{Kind: KindUpstream, Message: "upstream error"}
	ErrValidation           = &Error{Kind: KindValidation, Message: "validation error"}
	ErrInvalidPayload       = &Error{Kind: KindInvalidPayload, Message: "invalid payload"}
)

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsClientError reports whether err was caused by the caller's input
// rather than by the server or the upstream.
func IsClientError(err error) bool {
	return KindOf(err) == KindValidation
}
