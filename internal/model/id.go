package model

import "github.com/google/uuid"

// IDFunc generates a fresh, never-reused identifier.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}
