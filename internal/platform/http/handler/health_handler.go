// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Health handles the /api/health endpoint used by load balancers and the
// dashboard's connectivity probe. Responses are never cached.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
