package common

import "errors"

// AppError is a tender failure carrying a stable code that the CLI reports
// alongside structured details (offending field, credit used vs available).
type AppError struct {
	Code    string
	Message string
	Err     error
	Details any
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the sentinel so callers can match it with errors.Is.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError wraps a sentinel with a code and a human-readable message.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithDetails attaches structured details and returns the same error.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// ErrorCode returns the code of the first AppError in the chain, or "".
func ErrorCode(err error) string {
	var target *AppError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}
