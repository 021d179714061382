// Package domainerrors provides coded errors for the registry domain.
//
// Services return these so transport layers can translate them into HTTP
// statuses without string matching. Infrastructure facts (row missing,
// connection refused) stay as sentinel or driver errors and are wrapped with
// a code at the service boundary.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// Registry lifecycle codes.
	CodeNotEnabled   Code = "not_enabled"    // registration or renewal while the registry is paused
	CodeInvalidCID   Code = "invalid_cid"    // identifier outside [1000, 9999]
	CodeNotAvailable Code = "not_available"  // register on a CID that is neither unregistered nor expired
	CodeNotRenewable Code = "not_renewable"  // renew outside the renewal window
	CodeNotOwner     Code = "not_owner"      // caller fails the certificate ownership check
	CodeUnauthorized Code = "unauthorized"   // caller is neither owner nor bound address

	// Ambient codes.
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal"
)

// Error is a domain error with a machine-readable code.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a domain error with a code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. Returns nil if err
// is nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidCID, CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotOwner, CodeUnauthorized:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeNotAvailable, CodeNotRenewable, CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	case CodeNotEnabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
