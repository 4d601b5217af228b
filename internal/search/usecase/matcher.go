package usecase

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"

	"github.com/aarondl/null/v8"
)

func (uc *usecase) FindMatches(ctx context.Context, criteria model.SearchCriteria, lastChecked null.Time) ([]model.Catalyst, error) {
	opts := buildFeedOptions(criteria, lastChecked)

	matches, err := uc.feed.List(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.search.usecase.FindMatches.List: %v", err)
		return nil, search.ErrFeedUnavailable
	}

	return matches, nil
}

// buildFeedOptions translates search criteria into a feed query.
// Ticker presence and the created_at cursor are always applied; every
// other constraint only when set.
func buildFeedOptions(criteria model.SearchCriteria, lastChecked null.Time) feed.ListOptions {
	return feed.ListOptions{
		CreatedSince:       lastChecked,
		Phase:              criteria.Phase,
		MinMarketCap:       criteria.MinMarketCap,
		MaxMarketCap:       criteria.MaxMarketCap,
		IndicationContains: criteria.TherapeuticArea,
		MinEnrollment:      criteria.MinEnrollment,
		CompletionAfter:    criteria.CompletionDateStart,
		CompletionBefore:   criteria.CompletionDateEnd,
		RequireTicker:      true,
		OrderByCompletion:  true,
	}
}
