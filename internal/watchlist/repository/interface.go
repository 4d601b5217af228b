package repository

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// ListUsersWithTickers returns every user holding a non-empty
	// watchlist, with tier and tickers resolved. This is the unit of
	// work list for the watchlist sweep.
	ListUsersWithTickers(ctx context.Context) ([]model.WatchlistUser, error)
}
