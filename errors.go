package smartpay

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes produced by the library itself. Server-side error codes are
// passed through verbatim from the API response body.
const (
	ErrorCodeRequestInvalid  = "request.invalid"
	ErrorCodeUnexpectedError = "unexpected_error"
)

// StatusCodeTransportFailure marks errors where the request never completed,
// so no HTTP status exists.
const StatusCodeTransportFailure = -1

// Construction-time sentinel errors.
var (
	ErrSecretKeyRequired = errors.New("secret key is required")
	ErrInvalidSecretKey  = errors.New("secret key is invalid")
	ErrInvalidPublicKey  = errors.New("public key is invalid")
	ErrPublicKeyRequired = errors.New("public key is required")
)

// Error is the single error type surfaced by every API operation. It carries
// the remote error code and HTTP status for server failures, a zero status
// for client-side validation failures, and StatusCodeTransportFailure for
// network-level failures.
type Error struct {
	ErrorCode  string
	StatusCode int
	Message    string
	Details    []string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.ErrorCode)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString(")")
	}

	return b.String()
}

// Temporary reports whether the failure is one the retry policy would have
// retried: a transport failure or a retryable server status.
func (e *Error) Temporary() bool {
	if e.StatusCode == StatusCodeTransportFailure {
		return true
	}
	for _, code := range defaultRetryableStatuses {
		if e.StatusCode == code {
			return true
		}
	}
	return false
}

func newRequestError(message string, details ...string) *Error {
	return &Error{
		ErrorCode: ErrorCodeRequestInvalid,
		Message:   message,
		Details:   details,
	}
}

func newTransportError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeUnexpectedError,
		StatusCode: StatusCodeTransportFailure,
		Message:    err.Error(),
	}
}

func newParseError(statusCode int, err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeUnexpectedError,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("%d %s", statusCode, err.Error()),
	}
}
