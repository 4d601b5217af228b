package postgres

import (
	"database/sql"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist/repository"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *sql.DB) *implRepository {
	return &implRepository{
		l:  l,
		db: db,
	}
}
