package http

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type Handler struct {
	l  pkgLog.Logger
	uc search.UseCase
}

func New(l pkgLog.Logger, uc search.UseCase) *Handler {
	return &Handler{
		l:  l,
		uc: uc,
	}
}
