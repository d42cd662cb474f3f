package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"pos_backend/pkg/store"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("order o1: %w", store.ErrNotFound), http.StatusNotFound},
		{store.ErrInvalidCredentials, http.StatusUnauthorized},
		{store.ErrNoStaffRecords, http.StatusServiceUnavailable},
		{fmt.Errorf("PAID -> PREPARING: %w", store.ErrInvalidTransition), http.StatusConflict},
		{store.ErrDuplicateID, http.StatusConflict},
		{store.ErrEmptyOrder, http.StatusBadRequest},
		{store.ErrInvalidQuantity, http.StatusBadRequest},
		{store.ErrItemUnavailable, http.StatusBadRequest},
		{store.ErrInvalidStatus, http.StatusBadRequest},
		{fmt.Errorf("name is required: %w", store.ErrInvalidInput), http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusForError(tt.err); got != tt.want {
			t.Errorf("StatusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorMiddlewareHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware())
	router.GET("/boom", func(c *gin.Context) { c.Error(errors.New("dial tcp: refused")) })
	router.GET("/empty", func(c *gin.Context) { c.Error(store.ErrNoStaffRecords) })
	router.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"message": "already handled"})
		c.Error(errors.New("late"))
	})

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/boom", http.StatusInternalServerError, `{"message":"Internal server error"}`},
		{"/empty", http.StatusServiceUnavailable, `{"message":"` + NoStaffRecordsMessage + `"}`},
		{"/written", http.StatusTeapot, `{"message":"already handled"}`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.code || rec.Body.String() != tt.body {
			t.Errorf("%s: %d %s, want %d %s", tt.path, rec.Code, rec.Body.String(), tt.code, tt.body)
		}
	}
}
