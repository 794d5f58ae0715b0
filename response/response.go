package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message returns a success body of the form {"message": ...}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Success returns an arbitrary 200 JSON body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error returns an error body of the form {"error": ...}
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// BadRequest returns a 400 error body
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized returns a 401 error body
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden returns the 403 body used for cross-user resource access.
// The body text stays "Unauthorized" for compatibility with existing clients.
func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Unauthorized")
}

// NotFound returns a 404 error body
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

// ServerError returns a generic 500 error body. Internal details never
// reach the client; callers log them server-side.
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// UnsupportedMediaType returns the 415 body for non-JSON requests
func UnsupportedMediaType(c *gin.Context) {
	Error(c, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
}
