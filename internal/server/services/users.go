package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/profilehub/profilehub/internal/common"
	"github.com/profilehub/profilehub/internal/server/auth"
	"github.com/profilehub/profilehub/internal/server/config"
	"github.com/profilehub/profilehub/internal/server/models"
	"github.com/profilehub/profilehub/internal/server/repositories/repomanager"
)

// CreateUserParams are the fields accepted when creating a user directly
// (as opposed to self-registration through the session service).
type CreateUserParams struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
}

// UpdateUserParams carries a partial user update: nil fields are left
// untouched. Unlike profile updates, a password may be supplied here and is
// re-hashed only when present.
type UpdateUserParams struct {
	Username    *string
	DisplayName *string
	Email       *string
	Password    *string
}

// UsersService provides plain CRUD over user records.
type UsersService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	passwordHashCost int
}

// NewUsersService constructs a UsersService using repositories and server config.
func NewUsersService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UsersService {
	return &UsersService{
		db:               db,
		repomanager:      m,
		passwordHashCost: cfg.PasswordHashCost,
	}
}

// List returns all users.
func (s *UsersService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return users, nil
}

// Get returns a single user by id, or common.ErrorNotFound.
func (s *UsersService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Create inserts a new user with a freshly hashed password. A duplicate
// email yields common.ErrorAlreadyExists.
func (s *UsersService) Create(ctx context.Context, p CreateUserParams) (*models.User, error) {
	hash, err := auth.HashPassword(p.Password, s.passwordHashCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Username:     p.Username,
		DisplayName:  p.DisplayName,
		Email:        p.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Update merges the supplied fields into the record. The password hash is
// re-derived only when the password field is present in the payload.
func (s *UsersService) Update(ctx context.Context, id int64, p UpdateUserParams) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.DisplayName != nil {
		user.DisplayName = *p.DisplayName
	}
	if p.Email != nil {
		user.Email = *p.Email
	}
	if p.Password != nil {
		hash, err := auth.HashPassword(*p.Password, s.passwordHashCost)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.PasswordHash = hash
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return updated, nil
}

// Delete hard-deletes a user row, reporting whether it existed.
func (s *UsersService) Delete(ctx context.Context, id int64) (bool, error) {
	found, err := s.repomanager.Users(s.db).Delete(ctx, id)
	if err != nil {
		return false, common.ErrorInternal
	}
	return found, nil
}
