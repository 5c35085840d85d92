package domain

import "time"

// User represents a registered account. PasswordHash is a bcrypt hash
// and never leaves the persistence boundary.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
