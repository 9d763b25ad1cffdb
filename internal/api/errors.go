package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abubakar1702/techgeek/internal/engagement"
	"github.com/abubakar1702/techgeek/pkg/logging"
)

// Error represents an API error with its HTTP status
type Error struct {
	Status  int
	Message string
}

// NewError creates a new API error
func NewError(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// NewNotFound creates a not-found error
func NewNotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// NewForbidden creates a forbidden error
func NewForbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// NewUnauthenticated creates an unauthenticated error
func NewUnauthenticated(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

// NewValidation creates a validation error
func NewValidation(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// abortWithError writes the JSON error response for err. Domain
// sentinels are translated to their HTTP status; anything else is an
// opaque 500 with the detail kept in the server log.
func abortWithError(c *gin.Context, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"detail": apiErr.Message})
	case errors.Is(err, engagement.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "not found"})
	default:
		logging.WithComponent("api").Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
