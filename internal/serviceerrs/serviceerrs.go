package serviceerrs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport can expose it to clients
// instead of collapsing everything into one opaque message.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindAuth       Kind = "AUTH"
	KindInternal   Kind = "INTERNAL"
)

var ErrTokenExpired = errors.New("token expired")

// Error is the service-wide error value. Op names the failing operation,
// Message is safe to show to a caller, Err keeps the underlying cause for
// logs and errors.Is/As chains.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions is picked up by the GraphQL engine and copied into the
// error entry, so clients can branch on extensions.code.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(e.Kind),
	}
}

// KindOf reports the Kind carried by err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
