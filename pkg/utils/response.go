package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AttachmentResponse sends body as a file download
func AttachmentResponse(c *gin.Context, fileName, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, body)
}

// HTMLResponse sends a rendered HTML page
func HTMLResponse(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// MessageResponse sends {"message": ...} with the given status
func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}
