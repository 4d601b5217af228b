package redis

import "errors"

var (
	ErrHostRequired = errors.New("redis: host is required")
	ErrInvalidPort  = errors.New("redis: invalid port")
	ErrNil          = errors.New("redis: key does not exist")
)
