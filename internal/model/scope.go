package model

// Scope carries the authenticated caller through the request context.
// Tier is computed by the subscription system and consumed here as an
// opaque string.
type Scope struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Tier   string `json:"tier"`
	JTI    string `json:"jti"`
}

// IsPro reports whether the scope carries the paid tier.
func (s Scope) IsPro() bool {
	return s.Tier == TierPro
}
