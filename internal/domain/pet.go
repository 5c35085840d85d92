package domain

import "time"

// Pet is an animal listed for adoption.
type Pet struct {
	ID          string
	Name        string
	Type        string
	Breed       string
	Description string
	Location    string
	Image       string // URL or data URI supplied by the lister
	CreatedAt   time.Time
}
