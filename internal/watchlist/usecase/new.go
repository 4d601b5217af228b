package usecase

import (
	"time"

	alertRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	pkgRedis "github.com/UMwai/um-biotech-catalyst-radar/pkg/redis"
)

type usecase struct {
	l             pkgLog.Logger
	feed          feed.Repository
	alerts        alertRepo.Repository
	redis         pkgRedis.IRedis
	staircase     []watchlist.Threshold
	retention     time.Duration
	redFlagWindow time.Duration
	horizon       time.Duration
	clock         func() time.Time
}

// New builds the watchlist usecase. The staircase is validated here so a
// malformed configuration fails at startup, not mid-sweep. redis may be
// nil; red-flag dedup then relies on the store lookup alone.
func New(l pkgLog.Logger, feedRepo feed.Repository, alerts alertRepo.Repository, redis pkgRedis.IRedis, cfg watchlist.Config) (watchlist.UseCase, error) {
	if cfg.Staircase == nil {
		cfg.Staircase = watchlist.DefaultStaircase
	}
	if err := watchlist.ValidateStaircase(cfg.Staircase); err != nil {
		return nil, err
	}

	uc := &usecase{
		l:             l,
		feed:          feedRepo,
		alerts:        alerts,
		redis:         redis,
		staircase:     cfg.Staircase,
		retention:     cfg.StaircaseRetention,
		redFlagWindow: cfg.RedFlagDedupWindow,
		horizon:       cfg.Horizon,
		clock:         time.Now,
	}
	if uc.retention <= 0 {
		uc.retention = 90 * 24 * time.Hour
	}
	if uc.redFlagWindow <= 0 {
		uc.redFlagWindow = 24 * time.Hour
	}
	if uc.horizon <= 0 {
		uc.horizon = 91 * 24 * time.Hour
	}

	return uc, nil
}
