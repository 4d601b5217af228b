package httpserver

import (
	alertingHTTP "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/delivery/http"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/middleware"
	searchHTTP "github.com/UMwai/um-biotech-catalyst-radar/internal/search/delivery/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mw := middleware.New(srv.logger, srv.jwtMgr)
	api := srv.gin.Group(Api)

	alertingHTTP.New(srv.logger, srv.alertingUC).RegisterRoutes(api, mw)
	searchHTTP.New(srv.logger, srv.searchUC).RegisterRoutes(api, mw)

	return nil
}
