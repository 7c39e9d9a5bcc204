package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a service failure for the boundary layer.
type Code string

const (
	CodeValidation Code = "validation"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeInternal   Code = "internal"
)

// Kinds carried by not_found and conflict errors.
const (
	KindAccount                = "Account"
	KindUser                   = "User"
	KindProduct                = "Product"
	KindAddon                  = "Addon"
	KindAccountProductRelation = "AccountProductRelation"
	KindDuplicateAddonName     = "DuplicateAddonName"
	KindAlreadySubscribed      = "AlreadySubscribed"
	KindUniqueConstraint       = "UniqueConstraint"
)

// Error is the canonical typed error returned by every service operation.
type Error struct {
	Code    Code
	Kind    string
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewValidation reports a field-level rule violation.
func NewValidation(op, message string) error {
	return &Error{Code: CodeValidation, Op: op, Message: message}
}

// NewNotFound reports a missing entity of the given kind.
func NewNotFound(op, kind, message string) error {
	return &Error{Code: CodeNotFound, Kind: kind, Op: op, Message: message}
}

// NewConflict reports a duplicate relation or name collision.
func NewConflict(op, kind, message string) error {
	return &Error{Code: CodeConflict, Kind: kind, Op: op, Message: message}
}

// Internal wraps an unexpected persistence failure.
func Internal(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Code: CodeInternal, Op: op, Message: cause.Error(), Cause: cause}
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code Code) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// CodeOf extracts the error code when available.
func CodeOf(err error) Code {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return ""
	}
	return appErr.Code
}

// KindOf extracts the not_found/conflict kind when available.
func KindOf(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return ""
	}
	return appErr.Kind
}
