package roomchat

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota

	// ErrorAddress means the connection address could not be built,
	// e.g. an empty room id or a malformed base URL.
	ErrorAddress

	// ErrorTransport means the connection dropped, was refused, or hit a
	// protocol error. The session moves to StateFailed.
	ErrorTransport

	// ErrorDecode means an inbound frame did not parse into a
	// ChatMessage. The frame is dropped; the session keeps running.
	ErrorDecode

	// ErrorHandleUsed means Open was called on a session that already
	// ran. A Session handle connects at most once.
	ErrorHandleUsed
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorAddress:
		return "address_error"
	case ErrorTransport:
		return "transport_error"
	case ErrorDecode:
		return "decode_error"
	case ErrorHandleUsed:
		return "handle_used"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// ChatError is a structured error with code and context.
type ChatError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *ChatError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is comparison by code.
func (e *ChatError) Is(target error) bool {
	t, ok := target.(*ChatError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new ChatError with the given code and message.
func NewError(code ErrorCode, message string) *ChatError {
	return &ChatError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a ChatError.
func WrapError(code ErrorCode, message string, err error) *ChatError {
	return &ChatError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

func hasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var ce *ChatError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code == code
}

// IsAddressError reports whether err is an address-construction error.
func IsAddressError(err error) bool { return hasCode(err, ErrorAddress) }

// IsTransportError reports whether err is a transport-level error.
func IsTransportError(err error) bool { return hasCode(err, ErrorTransport) }

// IsDecodeError reports whether err is a per-frame decode error.
func IsDecodeError(err error) bool { return hasCode(err, ErrorDecode) }
