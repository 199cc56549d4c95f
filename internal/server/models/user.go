package models

import "time"

// User is the persisted account record. PasswordHash always holds a bcrypt
// hash, never a plaintext password.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
