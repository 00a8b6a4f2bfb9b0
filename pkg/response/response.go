// Package response writes the JSON body shapes the Dewini frontend expects.
// Document endpoints use a bare {"message": ...} envelope; user endpoints
// add a "type" discriminator ("success" or "error").
package response

import "github.com/gin-gonic/gin"

// Message writes {"message": msg}.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// WithData writes {"message": msg, <key>: data}.
func WithData(c *gin.Context, status int, msg, key string, data any) {
	c.JSON(status, gin.H{"message": msg, key: data})
}

// Typed writes {"message": msg, "type": typ} merged with extra fields.
func Typed(c *gin.Context, status int, msg, typ string, extra gin.H) {
	body := gin.H{"message": msg, "type": typ}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
