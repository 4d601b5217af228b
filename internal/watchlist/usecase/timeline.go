package usecase

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

// CheckTimelineChanges would compare current catalyst dates against
// previously observed ones. The feed keeps no date history, so there is
// nothing to compare yet and no alerts are produced.
// TODO: snapshot catalyst dates per sweep so moves become detectable.
func (uc *usecase) CheckTimelineChanges(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error) {
	return nil, nil
}
