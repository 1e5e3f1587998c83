package domain

import "time"

// Kitten is a record owned by exactly one user. The owner is fixed at creation
// and never reassigned.
type Kitten struct {
	ID      int64
	Name    string
	Age     int
	Color   string
	OwnerID int64
	// OwnerUsername is populated only by lookups that join the users table.
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
