package usecase

import (
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	alertRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	searchRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/sweep"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/user"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist"
	watchRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist/repository"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type usecase struct {
	l          pkgLog.Logger
	searches   searchRepo.Repository
	matcher    search.UseCase
	users      user.UseCase
	alerts     alertRepo.Repository
	alerting   alerting.UseCase
	watchlist  watchlist.UseCase
	watchUsers watchRepo.Repository
	clock      func() time.Time
}

func New(
	l pkgLog.Logger,
	searches searchRepo.Repository,
	matcher search.UseCase,
	users user.UseCase,
	alerts alertRepo.Repository,
	alertingUC alerting.UseCase,
	watchlistUC watchlist.UseCase,
	watchUsers watchRepo.Repository,
) sweep.UseCase {
	return &usecase{
		l:          l,
		searches:   searches,
		matcher:    matcher,
		users:      users,
		alerts:     alerts,
		alerting:   alertingUC,
		watchlist:  watchlistUC,
		watchUsers: watchUsers,
		clock:      time.Now,
	}
}
