package http

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the alert and preference routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	alerts := r.Group("/alerts", mw.Auth())
	{
		alerts.GET("", h.ListAlerts)
		alerts.POST("/:alertID/acknowledge", h.Acknowledge)
	}

	notifications := r.Group("/notifications", mw.Auth())
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/:notificationID/acknowledge", h.AcknowledgeNotification)
	}

	prefs := r.Group("/preferences", mw.Auth())
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.UpdatePreferences)
	}
}
