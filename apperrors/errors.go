package apperrors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrap attaches a cause to a template error without mutating it.
func Wrap(template *Error, err error) *Error {
	return &Error{Code: template.Code, Message: template.Message, Err: err}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrConflict       = New(http.StatusConflict, "Conflict", nil)
	ErrUnprocessable  = New(http.StatusUnprocessableEntity, "Unprocessable request", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Domain failure taxonomy
var (
	ErrValidation         = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrBlockedAction      = New(http.StatusForbidden, "Action not permitted", nil)
	ErrGatewayFailure     = New(http.StatusBadGateway, "Remote backend error", nil)
)

// ErrorMiddleware converts errors attached to the gin context into JSON
// responses.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if e, ok := err.(*Error); ok {
				appErr = e
			} else {
				appErr = Wrap(ErrInternalServer, err)
			}
			c.JSON(appErr.Code, gin.H{"code": appErr.Code, "error": appErr.Error()})
			c.Abort()
		}
	}
}
