package watchlist

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// CheckDateWindows walks the user's tickers and emits at most one
	// escalation alert per catalyst per pass, at the first staircase
	// threshold not yet alerted for (user, ticker, threshold).
	CheckDateWindows(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error)

	// CheckTimelineChanges detects catalyst date moves. Detection needs
	// prior-date snapshots which the feed does not keep yet, so this
	// currently emits nothing.
	CheckTimelineChanges(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error)

	// CheckRedFlags evaluates each ticker's latest filing against the
	// red-flag rule set. Conditions dedup independently within the
	// configured window. A ticker without filings yields zero alerts.
	CheckRedFlags(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error)
}
