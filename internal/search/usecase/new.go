package usecase

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type usecase struct {
	l        pkgLog.Logger
	feed     feed.Repository
	searches repository.Repository
}

func New(l pkgLog.Logger, feedRepo feed.Repository, searchRepo repository.Repository) search.UseCase {
	return &usecase{
		l:        l,
		feed:     feedRepo,
		searches: searchRepo,
	}
}
