package usecase

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/user"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/user/repository"

	"github.com/friendsofgo/errors"
)

func (uc *usecase) Detail(ctx context.Context, id string) (model.User, error) {
	u, err := uc.repo.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, user.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.user.usecase.Detail.repo: %v", err)
		return model.User{}, err
	}

	return u, nil
}
