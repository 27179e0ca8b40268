package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LimitConcurrentRequests returns a Gin middleware that caps how many
// requests of a route are handled at once. Past maxConcurrent, requests are
// rejected with HTTP 429 and a Retry-After hint; X-Concurrency-Limit reports
// the cap. Values below 1 are treated as 1.
//
// Example usage, on the batch endpoint:
//
//	r.POST("/api/url/parse/batch", LimitConcurrentRequests(cfg.MaxConcurrentBatch), h.Batch)
func LimitConcurrentRequests(maxConcurrent int) gin.HandlerFunc {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	semaphore := make(chan struct{}, maxConcurrent)
	limit := strconv.Itoa(maxConcurrent)

	return func(c *gin.Context) {
		select {
		case semaphore <- struct{}{}:
			defer func() { <-semaphore }()
			c.Next()
		default:
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
			c.Header("X-Concurrency-Limit", limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many concurrent requests",
			})
		}
	}
}

const retryAfterSeconds = 1
