package user

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

// UseCase resolves users for notification targeting. Users are owned by
// the upstream account system; this surface is read-only.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Detail(ctx context.Context, id string) (model.User, error)
}
