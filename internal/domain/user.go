package domain

import "time"

// User is a registered account. The password is stored only as a bcrypt hash;
// there is no update or delete path once a user exists.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
