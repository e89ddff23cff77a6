// internal/pkg/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for HTTP status mapping.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindReferentialIntegrity
	KindBusinessRule
	KindTransaction
)

// Error is an application error carrying a classification.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a bad or missing field in a request.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing row.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a unique-constraint style violation.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// ReferentialIntegrity reports a delete blocked by referencing rows.
func ReferentialIntegrity(format string, args ...interface{}) *Error {
	return &Error{Kind: KindReferentialIntegrity, Msg: fmt.Sprintf(format, args...)}
}

// BusinessRule reports a domain policy violation.
func BusinessRule(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Msg: fmt.Sprintf(format, args...)}
}

// Transaction wraps a failure inside a coordinated multi-statement unit.
// The unit has already been rolled back by the time this is returned.
func Transaction(err error, msg string) *Error {
	return &Error{Kind: KindTransaction, Msg: msg, Err: err}
}

// KindOf extracts the classification from an error chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindReferentialIntegrity:
		return http.StatusConflict
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
