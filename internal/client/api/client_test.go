package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/profilehub/profilehub/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLogin_StoresTokenPair(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@x.com" || body["password"] != "pw" {
			t.Errorf("unexpected body: %v", body)
		}
		writeJSON(w, http.StatusOK, TokenResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         User{ID: 1, Email: "a@x.com"},
		})
	})

	if c.LoggedIn() {
		t.Fatal("fresh client must not be logged in")
	}

	resp, err := c.Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.User.ID != 1 {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if !c.LoggedIn() {
		t.Fatal("client must be logged in after login")
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	})

	_, err := c.Login(context.Background(), "a@x.com", "bad")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
	if c.LoggedIn() {
		t.Fatal("failed login must not store tokens")
	}
}

func TestRegister_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	})

	_, err := c.Register(context.Background(), RegisterParams{
		Username: "alice", Email: "a@x.com", Password: "pw",
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRefresh_SendsStoredToken(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Path {
		case "/api/v1/auth/login":
			writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "access-1", RefreshToken: "refresh-1"})
		case "/api/v1/auth/refresh":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["refreshToken"] != "refresh-1" {
				t.Errorf("refresh must send the stored token, got %q", body["refreshToken"])
			}
			writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-1"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	if _, err := c.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	resp, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if resp.AccessToken != "access-2" || resp.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected token pair: %+v", resp)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRefresh_ExpiredClearsPair(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login" {
			writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "a", RefreshToken: "r"})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error": common.ErrRefreshTokenExpired.Error(),
		})
	})

	if _, err := c.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	_, err := c.Refresh(context.Background())
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want common.ErrRefreshTokenExpired, got %v", err)
	}
	if c.LoggedIn() {
		t.Fatal("expired session must clear the stored pair")
	}
}

func TestProfile_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login" {
			writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "access-1", RefreshToken: "r"})
			return
		}
		if got := r.Header.Get(common.AuthorizationHeaderName); got != common.BearerPrefix+"access-1" {
			t.Errorf("bad auth header: %q", got)
		}
		writeJSON(w, http.StatusOK, User{ID: 1, Username: "alice"})
	})

	if _, err := c.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestLogout_ClearsPair(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/login" {
			writeJSON(w, http.StatusOK, TokenResponse{AccessToken: "a", RefreshToken: "r"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"revoked": true})
	})

	if _, err := c.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	revoked, err := c.Logout(context.Background())
	if err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if !revoked {
		t.Fatal("expected revoked=true")
	}
	if c.LoggedIn() {
		t.Fatal("logout must clear the stored pair")
	}
}

func TestGetUser_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	_, err := c.GetUser(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDo_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.ListUsers(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
