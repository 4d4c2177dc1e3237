package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	// Fields maps an offending field to the validation rule it failed.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrBusinessNotFound      = NewError(ErrCodeNotFound, "business not found")
	ErrClientNotFound        = NewError(ErrCodeNotFound, "client not found")
	ErrLeadNotFound          = NewError(ErrCodeNotFound, "lead not found")
	ErrTransactionNotFound   = NewError(ErrCodeNotFound, "transaction not found")
	ErrDocumentNotFound      = NewError(ErrCodeNotFound, "document not found")
	ErrInvoiceNotFound       = NewError(ErrCodeNotFound, "invoice not found")
	ErrProductNotFound       = NewError(ErrCodeNotFound, "product not found")
	ErrTaskNotFound          = NewError(ErrCodeNotFound, "task not found")
	ErrContentNotFound       = NewError(ErrCodeNotFound, "content item not found")
	ErrInvoiceAlreadyPaid    = NewError(ErrCodeConflict, "invoice already paid")
	ErrUnauthorized          = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload        = NewError(ErrCodeInvalid, "invalid payload")
	ErrMissingID             = NewError(ErrCodeInvalid, "missing id")
	ErrUnknownOperation      = NewError(ErrCodeNotFound, "unknown operation")
	ErrBackupSourceNotSQLite = NewError(ErrCodeInvalid, "restore source is not a sqlite database")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the classification of err, INTERNAL for anything unclassified.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
