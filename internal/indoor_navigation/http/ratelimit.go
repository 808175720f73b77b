package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter != nil && !h.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many route requests"})
			return
		}
		c.Next()
	}
}
