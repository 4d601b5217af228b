package httpserver

import (
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/errors"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/response"

	"github.com/gin-gonic/gin"
)

// healthCheck reports overall service health including dependencies.
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Failure 503 {object} response.Resp "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.db.PingContext(ctx); err != nil {
		response.Error(c, errors.NewServiceUnavailableHTTPError("PostgreSQL connection failed"))
		return
	}

	redisStatus := "disabled"
	if srv.redis != nil {
		redisStatus = "connected"
		if err := srv.redis.Ping(ctx); err != nil {
			// Redis down degrades gating to Postgres, it is not fatal.
			redisStatus = "unavailable"
		}
	}

	response.OK(c, gin.H{
		"status":      "healthy",
		"service":     "catalyst-radar-api",
		"environment": srv.environment,
		"postgres":    "connected",
		"redis":       redisStatus,
	})
}

// readyCheck reports whether the server can serve traffic.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.db.PingContext(ctx); err != nil {
		response.Error(c, errors.NewServiceUnavailableHTTPError("PostgreSQL connection not available"))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "catalyst-radar-api",
	})
}

// liveCheck reports process liveness only.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "catalyst-radar-api",
	})
}
