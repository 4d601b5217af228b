package postgres

import (
	"fmt"

	"github.com/google/uuid"
)

// IsUUID validates if the given string is a valid UUID.
// Returns an error if the string is not a valid UUID.
func IsUUID(u string) error {
	if u == "" {
		return fmt.Errorf("%w: UUID cannot be empty", ErrInvalidUUID)
	}
	if _, err := uuid.Parse(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	return nil
}

// IsValidUUID checks if the given string is a valid UUID.
func IsValidUUID(u string) bool {
	return IsUUID(u) == nil
}

// NewUUID generates a new UUID string.
func NewUUID() string {
	return uuid.New().String()
}

// ValidateUUIDs validates a slice of UUID strings.
func ValidateUUIDs(ids []string) error {
	for i, id := range ids {
		if err := IsUUID(id); err != nil {
			return fmt.Errorf("invalid UUID at index %d: %w", i, err)
		}
	}
	return nil
}
