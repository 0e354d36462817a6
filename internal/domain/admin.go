package domain

import "time"

type Admin struct {
	ID       int64
	Username string
	// PasswordHash is a bcrypt hash; rows migrated from the old panel
	// may still hold a plaintext password.
	PasswordHash string
	DisplayName  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
