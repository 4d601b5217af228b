package search

import "github.com/UMwai/um-biotech-catalyst-radar/internal/model"

// CreateSearchInput is the validated input for CreateSearch.
type CreateSearchInput struct {
	Name     string
	Criteria model.SearchCriteria
	Channels []model.Channel
}
