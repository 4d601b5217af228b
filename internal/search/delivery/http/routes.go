package http

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the saved-search routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	searches := r.Group("/searches", mw.Auth())
	{
		searches.GET("", h.ListSearches)
		searches.POST("", h.CreateSearch)
		searches.GET("/:searchID", h.DetailSearch)
		searches.POST("/:searchID/pause", h.PauseSearch)
		searches.POST("/:searchID/resume", h.ResumeSearch)
	}
}
