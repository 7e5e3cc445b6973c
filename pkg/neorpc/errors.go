package neorpc

import (
	"errors"
	"fmt"
)

// Error represents JSON-RPC 2.0 error returned by the server.
type Error struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// Standard JSON-RPC 2.0 error codes.
const (
	ParseErrorCode          = -32700
	InvalidRequestCode      = -32600
	MethodNotFoundCode      = -32601
	InvalidParamsCode       = -32602
	InternalServerErrorCode = -32603
)

var (
	// ErrInvalidParams represents a generic "invalid parameters" error.
	ErrInvalidParams = NewError(InvalidParamsCode, "Invalid params", "")
	// ErrMethodNotFound represents an unknown method error.
	ErrMethodNotFound = NewError(MethodNotFoundCode, "Method not found", "")
	// ErrUnknownTransaction is returned for rejected transactions without
	// a specific reason.
	ErrUnknownTransaction = NewError(-500, "Unknown error", "")
	// ErrAlreadyExists is returned for transactions that are already in the
	// pool or in the chain.
	ErrAlreadyExists = NewError(-501, "Block or transaction already exists and cannot be sent repeatedly.", "")
	// ErrValidationFailed is returned for transactions failing verification.
	ErrValidationFailed = NewError(-504, "Block or transaction validation failed.", "")

	// ErrInvalidResponse is returned for malformed server responses.
	ErrInvalidResponse = errors.New("invalid JSON-RPC response")
)

// NewError is an Error constructor that takes Error contents from its
// parameters.
func NewError(code int64, message string, data string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%d) - %s", e.Message, e.Code, e.Data)
}

// Is denotes whether the error matches the target one, errors are compared
// by code.
func (e *Error) Is(target error) bool {
	var clientErr *Error
	if !errors.As(target, &clientErr) {
		return false
	}
	return e.Code == clientErr.Code
}
