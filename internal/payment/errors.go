package payment

import "fmt"

// ErrorCode classifies gateway failures for the API layer: configuration
// problems are deploy-time mistakes, transport errors are network-level,
// api errors carry the gateway's own message.
type ErrorCode string

const (
	ErrCodeConfiguration ErrorCode = "configuration"
	ErrCodeTransport     ErrorCode = "transport"
	ErrCodeAPI           ErrorCode = "api"
)

type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("gateway %s error: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("gateway %s error: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}
