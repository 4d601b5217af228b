package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// SearchCriteria is the filter half of a saved search. Unset fields do
// not constrain the match. Stored as JSONB on the saved_searches row.
type SearchCriteria struct {
	Phase               null.String  `json:"phase,omitempty"`
	MinMarketCap        null.Float64 `json:"min_market_cap,omitempty"`
	MaxMarketCap        null.Float64 `json:"max_market_cap,omitempty"`
	TherapeuticArea     null.String  `json:"therapeutic_area,omitempty"`
	MinEnrollment       null.Int     `json:"min_enrollment,omitempty"`
	CompletionDateStart null.Time    `json:"completion_date_start,omitempty"`
	CompletionDateEnd   null.Time    `json:"completion_date_end,omitempty"`
}

// SavedSearch is a user-defined catalyst filter with subscribed
// notification channels. The sweep advances LastChecked after every
// evaluation regardless of matches; paused searches are deactivated,
// never deleted.
type SavedSearch struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	Criteria    SearchCriteria `json:"criteria"`
	Channels    []Channel      `json:"channels"`
	LastChecked null.Time      `json:"last_checked,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
}

// WatchlistUser is one unit of work for the watchlist sweep: a user,
// their subscription tier and the tickers they monitor.
type WatchlistUser struct {
	UserID  string   `json:"user_id"`
	Tier    string   `json:"tier"`
	Tickers []string `json:"tickers"`
}
