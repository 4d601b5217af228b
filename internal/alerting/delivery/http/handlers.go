package http

import (
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/errors"
	postgresPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/postgre"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/response"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"

	"github.com/gin-gonic/gin"
)

// ListAlerts returns the caller's watchlist alerts, newest first.
// @Summary List alerts
// @Tags Alerts
// @Produce json
// @Param unread_only query bool false "Only unacknowledged alerts"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} listAlertsResp
// @Router /alerts [get]
func (h *Handler) ListAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var req listAlertsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.alerting.delivery.http.ListAlerts.ShouldBindQuery: %v", err)
		response.Error(c, errors.NewValidationError("query"))
		return
	}
	req.PaginateQuery.Adjust()

	alerts, pag, err := h.uc.ListAlerts(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newListAlertsResp(alerts, pag))
}

// Acknowledge marks one alert as read. Acknowledging an already
// acknowledged alert is a no-op success.
// @Summary Acknowledge an alert
// @Tags Alerts
// @Param alertID path string true "Alert ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /alerts/{alertID}/acknowledge [post]
func (h *Handler) Acknowledge(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	alertID := c.Param("alertID")
	if !postgresPkg.IsValidUUID(alertID) {
		response.Error(c, errors.NewValidationError("alertID"))
		return
	}

	if err := h.uc.Acknowledge(ctx, sc, alertID); err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// ListNotifications returns the caller's saved-search delivery
// records, newest first.
// @Summary List saved-search notifications
// @Tags Alerts
// @Produce json
// @Param unread_only query bool false "Only unacknowledged notifications"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} listNotificationsResp
// @Router /notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var req listNotificationsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.alerting.delivery.http.ListNotifications.ShouldBindQuery: %v", err)
		response.Error(c, errors.NewValidationError("query"))
		return
	}
	req.PaginateQuery.Adjust()

	notifications, pag, err := h.uc.ListNotifications(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newListNotificationsResp(notifications, pag))
}

// AcknowledgeNotification marks one delivery record as read.
// @Summary Acknowledge a notification
// @Tags Alerts
// @Param notificationID path string true "Notification ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /notifications/{notificationID}/acknowledge [post]
func (h *Handler) AcknowledgeNotification(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	notificationID := c.Param("notificationID")
	if !postgresPkg.IsValidUUID(notificationID) {
		response.Error(c, errors.NewValidationError("notificationID"))
		return
	}

	if err := h.uc.AcknowledgeNotification(ctx, sc, notificationID); err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}

// GetPreferences returns the caller's notification preferences,
// creating the default row on first access.
// @Summary Get notification preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} preferencesResp
// @Router /preferences [get]
func (h *Handler) GetPreferences(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	prefs, err := h.uc.GetPreferences(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newPreferencesResp(prefs))
}

// UpdatePreferences replaces the caller's notification preferences.
// @Summary Update notification preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param body body updatePreferencesReq true "Preferences"
// @Success 200 {object} preferencesResp
// @Failure 400 {object} response.Resp
// @Router /preferences [put]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var req updatePreferencesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alerting.delivery.http.UpdatePreferences.ShouldBindJSON: %v", err)
		response.Error(c, errors.NewValidationError("body"))
		return
	}

	prefs, err := h.uc.UpdatePreferences(ctx, sc, req.toModel())
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newPreferencesResp(prefs))
}
