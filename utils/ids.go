package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new time-ordered (UUIDv7) identifier, so documents
// created later sort after earlier ones. It falls back to a random UUIDv4.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GenerateToken returns a random identifier for values that must not reveal
// creation order, such as session ids.
func GenerateToken() string {
	return uuid.NewString()
}
