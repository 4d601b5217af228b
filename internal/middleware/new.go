package middleware

import (
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"
)

type Middleware struct {
	l          pkgLog.Logger
	jwtManager scope.Manager
}

func New(l pkgLog.Logger, jwtManager scope.Manager) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
	}
}
