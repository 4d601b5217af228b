package alerting

import (
	"context"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// CanNotify applies the daily cap and quiet hours for one would-be
	// notification. It never blocks delivery on its own failure: when
	// the gate cannot decide, the result carries Allowed=true plus the
	// error, and the caller chooses the policy.
	CanNotify(ctx context.Context, prefs model.NotificationPreferences, now time.Time) GateResult

	// Dispatch renders the content once per channel and attempts
	// delivery. Channel failures are isolated; the call fails only
	// when no channel delivered.
	Dispatch(ctx context.Context, input DispatchInput) (DispatchResult, error)

	ListAlerts(ctx context.Context, sc model.Scope, opts ListAlertsInput) ([]model.Alert, paginator.Paginator, error)
	Acknowledge(ctx context.Context, sc model.Scope, alertID string) error

	ListNotifications(ctx context.Context, sc model.Scope, opts ListNotificationsInput) ([]model.AlertNotification, paginator.Paginator, error)
	AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error

	GetPreferences(ctx context.Context, sc model.Scope) (model.NotificationPreferences, error)
	UpdatePreferences(ctx context.Context, sc model.Scope, prefs model.NotificationPreferences) (model.NotificationPreferences, error)
}
