package sweep

import (
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

// SearchSweepSummary is the result of one saved-search sweep run. Every
// caught error is visible in Errors; nothing is dropped silently.
type SearchSweepSummary struct {
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
	SearchesChecked   int       `json:"searches_checked"`
	MatchesFound      int       `json:"matches_found"`
	NotificationsSent int       `json:"notifications_sent"`
	Errors            int       `json:"errors"`
}

// WatchlistSweepSummary is the result of one watchlist sweep run.
type WatchlistSweepSummary struct {
	StartedAt         time.Time               `json:"started_at"`
	CompletedAt       time.Time               `json:"completed_at"`
	UsersChecked      int                     `json:"users_checked"`
	AlertsGenerated   int                     `json:"alerts_generated"`
	AlertsByType      map[model.AlertType]int `json:"alerts_by_type"`
	NotificationsSent int                     `json:"notifications_sent"`
	Errors            int                     `json:"errors"`
}
