package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID in both directions. Clients may set
// it to correlate a parse with their own logs; the server always echoes it.
const RequestIDHeader = "X-Request-ID"

// RequestID is a Gin middleware that gives every request an identifier.
// A client-supplied X-Request-ID is kept when it is 1 to 64 bytes of
// printable ASCII; otherwise a new UUID is generated. The ID is then:
//   - Echoed back in the X-Request-ID response header
//   - Stored in the Gin context under RequestIDKey for AccessLog and handlers
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}

		c.Header(RequestIDHeader, requestID)
		c.Set(RequestIDKey, requestID)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if l := len(id); l < 1 || l > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID set by RequestID.
// Returns empty string when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
