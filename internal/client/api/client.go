// Package api implements the HTTP client for the profilehub backend.
// It keeps the issued token pair in memory and attaches the access token
// to authenticated calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/profilehub/profilehub/internal/common"
)

// ErrUnavailable indicates the server could not be reached at all, as
// opposed to an error response it sent back.
var ErrUnavailable = errors.New("server unavailable")

// User mirrors the server's public user representation.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TokenResponse mirrors the server's token pair payload.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type RegisterParams struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type UpdateProfileParams struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LoggedIn reports whether the client currently holds a token pair.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return ErrUnavailable
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

func mapStatusError(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if er.Error == common.ErrRefreshTokenExpired.Error() {
			return common.ErrRefreshTokenExpired
		}
		return common.ErrorUnauthorized
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("bad request: %s", er.Error)
	default:
		return common.ErrorInternal
	}
}

// Register creates an account and stores the issued token pair.
func (c *Client) Register(ctx context.Context, p RegisterParams) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", p, false, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return &resp, nil
}

// Login authenticates and stores the issued token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var resp TokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, false, &resp); err != nil {
		return nil, err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return &resp, nil
}

// Refresh exchanges the stored refresh token for a new access token. The
// refresh token itself stays the same.
func (c *Client) Refresh(ctx context.Context) (*TokenResponse, error) {
	var resp TokenResponse
	body := map[string]string{"refreshToken": c.refreshToken}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", body, false, &resp)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) || errors.Is(err, common.ErrorUnauthorized) {
			// session is dead either way; drop the stale pair
			c.accessToken = ""
			c.refreshToken = ""
		}
		return nil, err
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return &resp, nil
}

// Logout revokes the stored refresh token and clears the pair.
func (c *Client) Logout(ctx context.Context) (bool, error) {
	var resp struct {
		Revoked bool `json:"revoked"`
	}
	body := map[string]string{"refreshToken": c.refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", body, true, &resp); err != nil {
		return false, err
	}
	c.accessToken = ""
	c.refreshToken = ""
	return resp.Revoked, nil
}

// Profile fetches the authenticated user's record.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/profile", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile sends a partial profile update; nil fields stay untouched.
func (c *Client) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, "/api/v1/auth/profile", p, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteProfile deletes the authenticated user's account and clears the
// stored token pair.
func (c *Client) DeleteProfile(ctx context.Context) (bool, error) {
	var resp struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/v1/auth/profile", nil, true, &resp); err != nil {
		return false, err
	}
	c.accessToken = ""
	c.refreshToken = ""
	return resp.Deleted, nil
}

// ListUsers fetches all users. No authentication required.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users", nil, false, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id. No authentication required.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), nil, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
