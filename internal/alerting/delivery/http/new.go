package http

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

type Handler struct {
	l  pkgLog.Logger
	uc alerting.UseCase
}

func New(l pkgLog.Logger, uc alerting.UseCase) *Handler {
	return &Handler{
		l:  l,
		uc: uc,
	}
}
