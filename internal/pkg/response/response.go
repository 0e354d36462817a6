// Package response renders the JSON envelope every endpoint uses:
// {"success": true, "data": ...} or {"success": false, "error": {...}}.
// The booking widget and the admin panel both key off the success flag.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error sends a machine-readable code (e.g. SLOT_TAKEN) next to the
// human-readable message so clients can branch without parsing text.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails adds a details payload, used for per-field
// validation errors.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
