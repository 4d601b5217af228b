package repository

import "github.com/UMwai/um-biotech-catalyst-radar/internal/model"

// ListOptions contains options for listing a user's saved searches.
type ListOptions struct {
	ActiveOnly bool
}

// CreateOptions contains options for creating a saved search.
type CreateOptions struct {
	Name     string
	Criteria model.SearchCriteria
	Channels []model.Channel
}
