package utils

import "github.com/google/uuid"

// GenerateID returns a new contract identifier.
func GenerateID() string {
	return uuid.NewString()
}
