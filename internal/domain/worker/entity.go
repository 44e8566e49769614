package worker

import "time"

// Worker is a registry entry for a site crew member. Used to drive the manual
// attendance picker; account credentials live in the surrounding platform.
type Worker struct {
	ID        string
	FullName  string
	Email     string
	Phone     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
