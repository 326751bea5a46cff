package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindAuthzDenied       Kind = "forbidden"
	KindValidationFailed  Kind = "validation_failed"
	KindCredentialInvalid Kind = "unauthorized"
)

// Reasons attached to ValidationFailed / Conflict errors.
const (
	ReasonTaskParent             = "task_parent"
	ReasonCrossProjectAssignment = "cross_project_assignment"
	ReasonSelfDependency         = "self_dependency"
	ReasonDuplicateEdge          = "duplicate_edge"
	ReasonImmutableField         = "immutable_field"
	ReasonInactiveStorage        = "inactive_storage"
	ReasonInvalidField           = "invalid_field"
)

type Error struct {
	Kind    Kind
	Reason  string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuthzDenied:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindCredentialInvalid:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Denied(format string, args ...any) *Error {
	return &Error{Kind: KindAuthzDenied, Message: fmt.Sprintf(format, args...)}
}

func Invalid(reason, format string, args ...any) *Error {
	return &Error{Kind: KindValidationFailed, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func Credentials(format string, args ...any) *Error {
	return &Error{Kind: KindCredentialInvalid, Message: fmt.Sprintf(format, args...)}
}

// WithReason returns a copy of e carrying reason.
func (e *Error) WithReason(reason string) *Error {
	cp := *e
	cp.Reason = reason
	return &cp
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// ReasonOf returns the reason of err, or "" when err is not an *Error.
func ReasonOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ""
}
