package model

import "time"

// User is the slice of the account record this engine reads: the
// delivery address and the subscription tier. Account lifecycle lives
// outside this service.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}
