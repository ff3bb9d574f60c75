package errors

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnexpectedStatus    = errors.New("unexpected status")
	ErrNetworkFailure      = errors.New("network failure")
	ErrUnparseableResponse = errors.New("unparseable response")
	ErrMissingUserData     = errors.New("missing user data")
)

// Error codes
const (
	CodeInvalidInput        = "invalid_input"
	CodeProfileNotFound     = "profile_not_found"
	CodeUnexpectedStatus    = "unexpected_status"
	CodeNetworkFailure      = "network_failure"
	CodeUnparseableResponse = "unparseable_response"
	CodeMissingUserData     = "missing_user_data"
)

var kindCodes = map[error]string{
	ErrInvalidInput:        CodeInvalidInput,
	ErrProfileNotFound:     CodeProfileNotFound,
	ErrUnexpectedStatus:    CodeUnexpectedStatus,
	ErrNetworkFailure:      CodeNetworkFailure,
	ErrUnparseableResponse: CodeUnparseableResponse,
	ErrMissingUserData:     CodeMissingUserData,
}

// Error represents a custom error type
type Error struct {
	Code       string
	Message    string
	Kind       error
	StatusCode int
	Err        error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind error, format string, args ...any) *Error {
	return &Error{
		Code:    kindCodes[kind],
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapKind wraps err under the given kind.
func WrapKind(err error, kind error, message string) *Error {
	return &Error{
		Code:    kindCodes[kind],
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetStatusCode returns the HTTP status carried by the error, or 0.
func GetStatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

// IsNetworkFailure reports transport-level failures, the only kind worth retrying.
func IsNetworkFailure(err error) bool {
	return errors.Is(err, ErrNetworkFailure)
}
