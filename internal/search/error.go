package search

import "errors"

var (
	ErrSearchNotFound  = errors.New("saved search not found")
	ErrFeedUnavailable = errors.New("catalyst feed unavailable")
	ErrInvalidSearch   = errors.New("invalid saved search")
)
