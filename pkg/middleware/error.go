package middleware

import (
	"errors"
	"log"
	"net/http"
	"pos_backend/pkg/store"

	"github.com/gin-gonic/gin"
)

// NoStaffRecordsMessage explains a login attempt against an empty staff list.
const NoStaffRecordsMessage = "No staff records found. This usually means a database connection issue; check the database and try again."

// StatusForError maps domain errors to HTTP status codes
func StatusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNoStaffRecords):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrInvalidTransition), errors.Is(err, store.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrEmptyOrder),
		errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrItemUnavailable),
		errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ErrorMiddleware turns the last error attached with c.Error into a JSON
// response, unless the handler already wrote one
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		statusCode := StatusForError(err)
		message := err.Error()
		switch statusCode {
		case http.StatusInternalServerError:
			log.Printf("Error: %v", err)
			message = "Internal server error"
		case http.StatusUnauthorized:
			message = "Invalid Staff ID or Passcode. Please try again."
		case http.StatusServiceUnavailable:
			message = NoStaffRecordsMessage
		}

		c.JSON(statusCode, gin.H{"message": message})
	}
}

// RecoveryMiddleware handles panics and prevents server crashes
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Route not found",
		})
	}
}
