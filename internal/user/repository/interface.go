package repository

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context, opts ListOptions) ([]model.User, error)
}
