package scope

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoPayload    = errors.New("no payload in context")
)
