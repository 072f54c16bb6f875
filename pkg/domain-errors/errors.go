// Package domainerrors provides coded errors that services return and the
// HTTP layer translates into JSON responses. Stores return sentinel errors
// (pkg/platform/sentinel); services wrap them with a code here so handlers
// never need to know about infrastructure details.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category. The string value is the wire-level
// "error" field of the JSON error envelope.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"

	// CodeStoreUnavailable marks a failed read/write against the document
	// store. Recovered locally: feeds render empty, publishes report failure.
	CodeStoreUnavailable Code = "store_unavailable"

	// CodeMissingDocument means no ciphertext is on file. Distinct from a
	// decryption failure; the user sees "not available", not an error.
	CodeMissingDocument Code = "missing_document"

	// CodeDecryptionFailed covers key/ciphertext mismatch and malformed
	// envelopes. Deterministic, so never retried automatically.
	CodeDecryptionFailed Code = "decryption_failed"

	// CodeMissingIdentity means the active user or active dependent could
	// not be resolved; dependent operations do not proceed.
	CodeMissingIdentity Code = "missing_identity"
)

// Error is a coded domain error with an optional wrapped cause.
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

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As and logs.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or any coded error in its chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.cause
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when err
// carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps an error code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvariantViolation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeMissingDocument:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeDecryptionFailed:
		return http.StatusUnprocessableEntity
	case CodeMissingIdentity:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
