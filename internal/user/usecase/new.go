package usecase

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/user"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/user/repository"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type usecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

func New(l pkgLog.Logger, repo repository.Repository) user.UseCase {
	return &usecase{
		l:    l,
		repo: repo,
	}
}
