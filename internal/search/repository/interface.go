package repository

import (
	"context"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// ListActive returns every active saved search across all users,
	// oldest last_checked first, for the sweep to walk.
	ListActive(ctx context.Context) ([]model.SavedSearch, error)
	ListForUser(ctx context.Context, sc model.Scope, opts ListOptions) ([]model.SavedSearch, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.SavedSearch, error)
	Create(ctx context.Context, sc model.Scope, opts CreateOptions) (model.SavedSearch, error)
	// UpdateLastChecked advances the sweep cursor unconditionally,
	// matches or not.
	UpdateLastChecked(ctx context.Context, id string, checkedAt time.Time) error
	SetActive(ctx context.Context, sc model.Scope, id string, active bool) error
}
