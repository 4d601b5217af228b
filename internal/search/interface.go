package search

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"

	"github.com/aarondl/null/v8"
)

// UseCase evaluates saved-search criteria against the catalyst feed
// and manages the searches themselves.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// FindMatches returns catalysts created since lastChecked that pass
	// every set criterion, ordered by completion date ascending.
	// Records without a ticker never match. A null lastChecked means
	// first run: the window is unbounded.
	FindMatches(ctx context.Context, criteria model.SearchCriteria, lastChecked null.Time) ([]model.Catalyst, error)

	ListSearches(ctx context.Context, sc model.Scope) ([]model.SavedSearch, error)
	DetailSearch(ctx context.Context, sc model.Scope, id string) (model.SavedSearch, error)
	CreateSearch(ctx context.Context, sc model.Scope, input CreateSearchInput) (model.SavedSearch, error)
	// SetActive pauses (false) or resumes (true) a search. A paused
	// search is skipped by the sweep but keeps its last_checked cursor.
	SetActive(ctx context.Context, sc model.Scope, id string, active bool) error
}
