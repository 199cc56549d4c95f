// Package services contains server-side business logic. This file implements
// SessionService, which handles registration, login, refreshing access
// tokens, logout, and profile operations for the authenticated user.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/profilehub/profilehub/internal/common"
	"github.com/profilehub/profilehub/internal/dbx"
	"github.com/profilehub/profilehub/internal/server/auth"
	"github.com/profilehub/profilehub/internal/server/config"
	"github.com/profilehub/profilehub/internal/server/models"
	"github.com/profilehub/profilehub/internal/server/repositories/repomanager"
)

// TokenResponse bundles a short-lived access token, a long-lived refresh
// token, and the user both belong to.
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// RegisterParams are the fields accepted on registration.
type RegisterParams struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
}

// UpdateProfileParams carries a partial profile update: nil fields are left
// untouched. The password is deliberately absent; it is never changed here.
type UpdateProfileParams struct {
	Username    *string
	DisplayName *string
	Email       *string
}

// SessionService provides authentication-related operations:
//   - Register / Login: create users, verify credentials, mint token pairs
//   - RefreshAccessToken: mint new access tokens against a stored refresh token
//   - Logout / RevokeAllUserTokens: revoke refresh tokens
//   - Profile / UpdateProfile / DeleteProfile: identity-scoped profile ops
type SessionService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	passwordHashCost             int
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                           db,
		repomanager:                  m,
		accessSecret:                 []byte(cfg.AccessTokenSecret),
		refreshSecret:                []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		passwordHashCost:             cfg.PasswordHashCost,
	}
}

// Register creates a new user and issues its first token pair. A duplicate
// email yields common.ErrorAlreadyExists and leaves no rows behind.
func (s *SessionService) Register(ctx context.Context, p RegisterParams) (*TokenResponse, error) {

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, p.Email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	// Hashing is CPU-bound; do it before opening the transaction.
	hash, err := auth.HashPassword(p.Password, s.passwordHashCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var result *TokenResponse
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:     p.Username,
			DisplayName:  p.DisplayName,
			Email:        p.Email,
			PasswordHash: hash,
		})
		if err != nil {
			// the pre-check races with concurrent registrations; the unique
			// constraint is the authority
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrorAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		result, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Login verifies the credentials and, on success, revokes every previously
// active refresh token for the user before minting a new pair. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	var result *TokenResponse
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.RefreshTokens(tx).RevokeAllForUser(ctx, user.ID); err != nil {
			return fmt.Errorf("error revoking tokens: %w", err)
		}

		result, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RefreshAccessToken mints a new access token against a stored, active
// refresh token. The refresh token string itself is NOT rotated: the caller
// gets the same string back and keeps using it until login or logout.
// An expired token is revoked on first use and yields
// common.ErrRefreshTokenExpired.
func (s *SessionService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {

	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.FindActive(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.ExpiresAt.Before(time.Now()) {
		// lazy expiry: persist the revocation so later calls fail on lookup
		if _, err := repo.Revoke(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error revoking expired token: %w", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenResponse{AccessToken: accessToken, RefreshToken: token.Token, User: user}, nil
}

// Logout revokes a refresh token. It reports whether a token was actually
// revoked: false for an unknown or already-revoked token is a no-op signal,
// not an error.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	revoked, err := s.repomanager.RefreshTokens(s.db).Revoke(ctx, refreshToken)
	if err != nil {
		return false, fmt.Errorf("error revoking token: %w", err)
	}
	return revoked, nil
}

// RevokeAllUserTokens revokes every active refresh token owned by userID.
func (s *SessionService) RevokeAllUserTokens(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repomanager.RefreshTokens(s.db).RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error revoking tokens: %w", err)
	}
	return n, nil
}

// Profile returns the user record for an authenticated caller.
func (s *SessionService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// UpdateProfile merges only the supplied fields into the caller's record.
// Password and refresh tokens are never touched here.
func (s *SessionService) UpdateProfile(ctx context.Context, userID int64, p UpdateProfileParams) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
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

	updated, err := repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return updated, nil
}

// DeleteProfile hard-deletes the caller's user row. Refresh tokens go with
// it through the schema's ON DELETE CASCADE. Deleting a missing user returns
// false, not an error.
func (s *SessionService) DeleteProfile(ctx context.Context, userID int64) (bool, error) {
	found, err := s.repomanager.Users(s.db).Delete(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return found, nil
}

// ValidateAccessToken verifies an access token's signature and expiry and
// resolves it to a live user record. Used by the authorization gate; the
// refresh token store is never consulted.
func (s *SessionService) ValidateAccessToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := auth.ParseAccessToken(tokenString, s.accessSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

func (s *SessionService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenResponse, error) {
	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.GenerateRefreshToken(user.ID, s.refreshSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refreshToken, time.Now().Add(s.refreshTokenValidityDuration)); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}
