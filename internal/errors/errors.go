package errors

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories the core can produce. The
// transport boundary maps kinds to HTTP status codes; the core never
// formats HTTP responses itself.
type Kind int

const (
	KindInvalid Kind = iota
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindExpired
	KindDependency
)

// Token validation failure modes. Both surface as 401 at the boundary but
// are logged and phrased differently.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Error is a tagged core error: a kind, a caller-safe message, and an
// optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// StatusCode is the total kind -> HTTP status mapping.
func StatusCode(kind Kind) int {
	switch kind {
	case KindInvalid, KindExpired:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
