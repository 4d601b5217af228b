package scope

import "time"

const (
	// TokenExpirationDuration is the default expiration time for JWT tokens.
	TokenExpirationDuration = time.Hour * 24 * 7
)
