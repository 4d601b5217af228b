package usecase

import (
	"context"
	"fmt"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository"

	"github.com/friendsofgo/errors"
)

func (uc *usecase) ListSearches(ctx context.Context, sc model.Scope) ([]model.SavedSearch, error) {
	searches, err := uc.searches.ListForUser(ctx, sc, repository.ListOptions{})
	if err != nil {
		uc.l.Errorf(ctx, "internal.search.usecase.ListSearches.ListForUser: %v", err)
		return nil, err
	}
	return searches, nil
}

func (uc *usecase) DetailSearch(ctx context.Context, sc model.Scope, id string) (model.SavedSearch, error) {
	s, err := uc.searches.Detail(ctx, sc, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.SavedSearch{}, search.ErrSearchNotFound
		}
		uc.l.Errorf(ctx, "internal.search.usecase.DetailSearch.Detail: %v", err)
		return model.SavedSearch{}, err
	}
	return s, nil
}

func (uc *usecase) CreateSearch(ctx context.Context, sc model.Scope, input search.CreateSearchInput) (model.SavedSearch, error) {
	if err := validateSearchInput(input); err != nil {
		return model.SavedSearch{}, err
	}

	s, err := uc.searches.Create(ctx, sc, repository.CreateOptions{
		Name:     input.Name,
		Criteria: input.Criteria,
		Channels: input.Channels,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.search.usecase.CreateSearch.Create: %v", err)
		return model.SavedSearch{}, err
	}
	return s, nil
}

func (uc *usecase) SetActive(ctx context.Context, sc model.Scope, id string, active bool) error {
	err := uc.searches.SetActive(ctx, sc, id, active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return search.ErrSearchNotFound
		}
		uc.l.Errorf(ctx, "internal.search.usecase.SetActive.SetActive: %v", err)
		return err
	}
	return nil
}

func validateSearchInput(input search.CreateSearchInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", search.ErrInvalidSearch)
	}
	if len(input.Channels) == 0 {
		return fmt.Errorf("%w: at least one channel is required", search.ErrInvalidSearch)
	}
	for _, ch := range input.Channels {
		if !ch.IsValid() {
			return fmt.Errorf("%w: unknown channel %q", search.ErrInvalidSearch, ch)
		}
	}

	c := input.Criteria
	if c.MinMarketCap.Valid && c.MinMarketCap.Float64 < 0 {
		return fmt.Errorf("%w: min_market_cap must be non-negative", search.ErrInvalidSearch)
	}
	if c.MinMarketCap.Valid && c.MaxMarketCap.Valid && c.MinMarketCap.Float64 > c.MaxMarketCap.Float64 {
		return fmt.Errorf("%w: min_market_cap exceeds max_market_cap", search.ErrInvalidSearch)
	}
	if c.MinEnrollment.Valid && c.MinEnrollment.Int < 0 {
		return fmt.Errorf("%w: min_enrollment must be non-negative", search.ErrInvalidSearch)
	}
	if c.CompletionDateStart.Valid && c.CompletionDateEnd.Valid &&
		c.CompletionDateStart.Time.After(c.CompletionDateEnd.Time) {
		return fmt.Errorf("%w: completion_date_start is after completion_date_end", search.ErrInvalidSearch)
	}
	return nil
}
