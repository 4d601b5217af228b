package feed

import (
	"context"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

// Repository is the read-only contract against the upstream catalyst
// and filing feeds. The ingestion pipelines that populate these tables
// are external; this engine never writes them.
//
//go:generate mockery --name Repository
type Repository interface {
	// List returns catalysts matching opts, ordered by completion date
	// ascending when opts requests it.
	List(ctx context.Context, opts ListOptions) ([]model.Catalyst, error)
	// ListUpcoming returns catalysts for ticker whose completion date
	// falls within horizon from now. Past-dated catalysts are excluded.
	ListUpcoming(ctx context.Context, ticker string, horizon time.Duration) ([]model.Catalyst, error)
	// LatestFiling returns the most recent filing for ticker, preferring
	// quarterly over annual when filed the same day.
	// Returns ErrFilingNotFound when the ticker has no filing data.
	LatestFiling(ctx context.Context, ticker string) (model.Filing, error)
}
