// Package users declares the server-side repository contract for persisting
// user accounts.
package users

import (
	"context"

	"github.com/profilehub/profilehub/internal/server/models"
)

// Repository defines persistence operations on user records.
type Repository interface {
	// Create inserts a new user and returns it with the store-assigned id and
	// timestamps. A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// List returns all users ordered by id.
	List(ctx context.Context) ([]*models.User, error)

	// Update persists the mutable fields of the user row and bumps updated_at.
	// A missing row yields common.ErrorNotFound; a duplicate email yields
	// common.ErrorAlreadyExists.
	Update(ctx context.Context, user *models.User) (*models.User, error)

	// Delete hard-deletes the user row. It reports whether a row was removed;
	// deleting a non-existent user is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}
