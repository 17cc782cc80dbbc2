package ogmeta

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EENCODING = "encoding"
	ESTATUS   = "unexpected_status"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ResponseError is returned by fetchers when the server answers with a
// status code outside the 2xx range.
type ResponseError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return ESTATUS
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Error()
	}
	return "Internal error."
}

// StatusCode returns the HTTP status carried by a ResponseError anywhere in
// err's chain.
func StatusCode(err error) (int, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode, true
	}
	return 0, false
}
