package scope

import "github.com/golang-jwt/jwt"

// Payload represents the JWT token claims.
// Tier is the opaque subscription tier string the upstream billing
// system computed at token issue time.
type Payload struct {
	jwt.StandardClaims
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Tier   string `json:"tier"`
}

// implManager implements Manager.
type implManager struct {
	secretKey string
}
