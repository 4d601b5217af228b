package sweep

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// RunSearchSweep walks every active saved search once: match, dedup,
	// gate, dispatch, record, then advance last_checked. Per-search
	// failures are counted and skipped; only failing to list the
	// searches at all aborts the run.
	RunSearchSweep(ctx context.Context) (SearchSweepSummary, error)

	// RunWatchlistSweep walks every user with a non-empty watchlist and
	// runs the date-window, timeline and red-flag checks. Generated
	// alerts are persisted by the checks and then notified best-effort.
	RunWatchlistSweep(ctx context.Context) (WatchlistSweepSummary, error)
}
