package middleware

import (
	"strings"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/response"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth returns a middleware that validates JWT bearer tokens and sets
// the payload in context. Tier claims ride along in the payload and
// reach handlers through model.Scope.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.l.Warnf(c.Request.Context(), "Missing Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.l.Warnf(c.Request.Context(), "Invalid Authorization header format | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			m.l.Warnf(c.Request.Context(), "Empty token in Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = scope.SetPayloadToContext(ctx, payload)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
