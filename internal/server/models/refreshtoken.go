package models

import "time"

// RefreshToken is a server-stored session credential. Revoked is monotonic:
// once true it never resets.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
