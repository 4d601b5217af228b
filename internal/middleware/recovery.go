package middleware

import (
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/response"

	"github.com/gin-gonic/gin"
)

func Recovery(l pkgLog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				l.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c, err)
				c.Abort()
			}
		}()
		c.Next()
	}
}
