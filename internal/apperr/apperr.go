// Package apperr defines the error taxonomy shared by all services.
// Handlers never inspect raw repository errors; services wrap anything the
// client is allowed to see in an *Error, and everything else is reported as
// a generic 500 by the response layer.
package apperr

import "net/http"

type Kind int

const (
	Validation   Kind = iota // 400, field-level
	Unauthorized             // 401, missing/invalid/expired/revoked token
	Forbidden                // 403, role not permitted
	NotFound                 // 404
	Conflict                 // 409, uniqueness violation
	State                    // 400, bookkeeping invariant violated
	Internal                 // 500
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field messages for Validation and Conflict errors,
	// shaped for inline form display: {field: [messages]}.
	Fields map[string][]string
}

func (e *Error) Error() string { return e.Message }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation, State:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// WithField builds a Conflict/Validation error carrying a single field message.
func WithField(kind Kind, msg, field string, fieldMsgs ...string) *Error {
	return &Error{Kind: kind, Message: msg, Fields: map[string][]string{field: fieldMsgs}}
}
