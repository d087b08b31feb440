package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinic-scheduler-api/internal/auth"
	"clinic-scheduler-api/internal/middleware"
)

const tokenKey = "token"

// RequestLogger logs one line per request and echoes the request id.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "rest").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(middleware.RequestIDHeader, id)

		l := log.With().Str("request_id", id).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
		c.Next()

		ev := l.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = l.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

func RateLimit(rl *middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl != nil && !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
			return
		}
		c.Next()
	}
}

// BearerAuth stores the bearer token for handlers. With strict set, missing
// or unverifiable tokens are rejected here.
func BearerAuth(tokens *auth.Tokens, strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := middleware.BearerToken(c.GetHeader("Authorization"))
		if strict {
			if raw == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
				return
			}
			if _, ok := tokens.Verify(raw); !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
				return
			}
		}
		c.Set(tokenKey, raw)
		c.Next()
	}
}
