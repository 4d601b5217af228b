package repository

import "errors"

var ErrNotFound = errors.New("saved search not found")
