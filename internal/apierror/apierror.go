package apierror

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the closed set of error categories the API can produce.
// Every error that reaches a client is tagged with exactly one Kind, and the
// Kind alone decides the HTTP status code. This replaces the usual
// "centralized error middleware inspecting arbitrary error values" approach:
// the mapping is explicit and lives in one table below.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindInternal
)

// statusOf maps an error Kind to its HTTP status code.
var statusOf = map[Kind]int{
	KindNotFound:     http.StatusNotFound,
	KindValidation:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindInternal:     http.StatusInternalServerError,
}

// Error is a tagged API error. Message is what the client sees; Err (if any)
// is the underlying cause, kept for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's Kind.
func (e *Error) Status() int {
	if s, ok := statusOf[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// --- Constructors ---

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Respond writes the uniform JSON error body and aborts the request.
// This is the single boundary point where an Error becomes an HTTP response.
func Respond(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Status(), gin.H{"error": err.Message})
}
