// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/profilehub/profilehub/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID expiring at expiresAt.
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// FindActive looks up a non-revoked refresh token by its exact token string.
	// Implementations return common.ErrorNotFound when the token is absent or
	// already revoked.
	FindActive(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke flips the revoked flag on a still-active token. It reports
	// whether a row actually transitioned, so two concurrent callers cannot
	// both observe success. Revoking an unknown or already-revoked token is
	// not an error.
	Revoke(ctx context.Context, token string) (bool, error)

	// RevokeAllForUser revokes every active token owned by userID and returns
	// the number of tokens revoked.
	RevokeAllForUser(ctx context.Context, userID int64) (int64, error)
}
