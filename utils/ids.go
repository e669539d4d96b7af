package utils

import "github.com/google/uuid"

// GenerateID returns a fresh UUID string for users, sessions, journal
// entries and planner items.
func GenerateID() string {
	return uuid.New().String()
}
