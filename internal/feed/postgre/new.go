package postgres

import (
	"database/sql"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type implRepository struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

var _ feed.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB) *implRepository {
	return &implRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
