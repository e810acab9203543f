package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Every response carries the same envelope: success flag, optional message,
// payload or error list, and an RFC3339 timestamp.

// Timestamp is the envelope timestamp, RFC3339 in UTC.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// JSONSuccess writes a success envelope. Extra keys are merged at the top
// level of the envelope so handlers can keep the original payload shapes.
func JSONSuccess(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true, "timestamp": Timestamp()}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// JSONError writes a failure envelope with a single message.
func JSONError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg, "timestamp": Timestamp()})
}

// JSONAbort is JSONError for middleware, stopping the handler chain.
func JSONAbort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg, "timestamp": Timestamp()})
}
