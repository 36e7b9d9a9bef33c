package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/logger"
)

// ErrorBody is the payload shape for business-rule failures.
type ErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Respond is the single boundary translator from service errors to HTTP.
//
//	NotValidOperation  -> 409 {code, description}
//	ErrConcurrency     -> 409 {CONCURRENCY_ERROR, ...}
//	ErrForbidden       -> 403, empty body
//	gorm.ErrRecordNotFound -> 404
//	anything else      -> 500 generic, logged with full context
func Respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, ErrConcurrency):
		c.JSON(http.StatusConflict, ErrorBody{Code: CodeConcurrencyError, Description: "Concurrency error"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.Status(http.StatusNotFound)
	default:
		if nvo, ok := AsNotValidOperation(err); ok {
			c.JSON(http.StatusConflict, ErrorBody{Code: nvo.Code, Description: nvo.Description})
			return
		}
		logger.Error("unhandled error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// BadRequest sends a 400 response for malformed input.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context) {
	c.Status(http.StatusUnauthorized)
}
