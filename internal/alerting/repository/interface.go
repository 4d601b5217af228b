package repository

import (
	"context"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	// AlreadySent reports whether a notification exists for the
	// (search, catalyst) pair. This is the authoritative dedup lookup
	// for saved-search alerts.
	AlreadySent(ctx context.Context, searchID, catalystID string) (bool, error)
	RecordSearchAlert(ctx context.Context, opts RecordSearchAlertOptions) (model.AlertNotification, error)
	CountSentToday(ctx context.Context, userID string, dayStart time.Time) (int, error)

	// AlreadyAlerted reports whether a watchlist alert matching the
	// given identity exists. Since bounds the lookup window; a null
	// Since means lifetime.
	AlreadyAlerted(ctx context.Context, opts AlertedOptions) (bool, error)
	RecordWatchlistAlert(ctx context.Context, alert model.Alert) (model.Alert, error)

	ListAlerts(ctx context.Context, sc model.Scope, opts ListAlertsOptions) ([]model.Alert, paginator.Paginator, error)
	Acknowledge(ctx context.Context, sc model.Scope, alertID string, at time.Time) error

	ListNotifications(ctx context.Context, sc model.Scope, opts ListNotificationsOptions) ([]model.AlertNotification, paginator.Paginator, error)
	// AcknowledgeNotification flags a delivery record read. Flagging
	// twice is not an error for an existing row.
	AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error

	// GetOrCreatePreferences returns the user's preferences, writing
	// the default row on first access.
	GetOrCreatePreferences(ctx context.Context, userID string) (model.NotificationPreferences, error)
	UpdatePreferences(ctx context.Context, prefs model.NotificationPreferences) (model.NotificationPreferences, error)
}
