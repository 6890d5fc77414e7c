package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Sumatoshi-tech/sortbench/pkg/observability"
)

// HeaderRequestID carries the request correlation ID.
const HeaderRequestID = "X-Request-ID"

const (
	maxRequestIDLen = 128
	corsAnyOrigin   = "*"
	corsMethods     = "GET, POST, OPTIONS"
	corsHeaders     = "Content-Type, " + HeaderRequestID
)

// requestID propagates a client-supplied X-Request-ID or assigns a new one,
// and stores it on the request context for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

// cors answers preflight requests and sets Access-Control headers for the
// allowed origins. An empty list allows none.
func cors(origins []string) gin.HandlerFunc {
	anyOrigin := slices.Contains(origins, corsAnyOrigin)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case anyOrigin:
			c.Header("Access-Control-Allow-Origin", corsAnyOrigin)
		case origin != "" && slices.ContainsFunc(origins, func(o string) bool { return strings.EqualFold(o, origin) }):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		case origin != "" && c.Request.Method == http.MethodOptions:
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: msgCORSForbidden})

			return
		}

		c.Header("Access-Control-Allow-Methods", corsMethods)
		c.Header("Access-Control-Allow-Headers", corsHeaders)
		c.Header("Access-Control-Expose-Headers", HeaderRequestID)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)

			return
		}

		c.Next()
	}
}

// bodyLimit caps the request body; reads past the limit fail with
// *http.MaxBytesError.
func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

// limiter is a token bucket shared by all clients. A nil limiter admits
// everything.
type limiter struct {
	bucket *rate.Limiter
}

func newLimiter(perSecond float64, burst int) *limiter {
	if perSecond <= 0 {
		return nil
	}

	return &limiter{bucket: rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))}
}

func (l *limiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.bucket.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: msgRateLimited})

			return
		}

		c.Next()
	}
}
