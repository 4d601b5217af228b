package repository

import (
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"

	"github.com/aarondl/null/v8"
)

// RecordSearchAlertOptions inserts one saved-search notification.
type RecordSearchAlertOptions struct {
	SearchID   string
	CatalystID string
	UserID     string
	Channels   []model.Channel
	Content    model.AlertContent
	SentAt     time.Time
}

// AlertedOptions identifies a watchlist alert for dedup. Ticker, UserID
// and Type are always required; the nullable fields narrow the identity
// (catalyst + threshold for date windows, condition for red flags).
type AlertedOptions struct {
	UserID        string
	Ticker        string
	Type          model.AlertType
	CatalystID    null.String
	ThresholdDays null.Int
	Condition     null.String
	Since         null.Time
}

// ListAlertsOptions filters the per-user alert listing.
type ListAlertsOptions struct {
	UnreadOnly    bool
	PaginateQuery paginator.PaginateQuery
}

// ListNotificationsOptions filters the per-user saved-search
// notification listing.
type ListNotificationsOptions struct {
	UnreadOnly    bool
	PaginateQuery paginator.PaginateQuery
}
