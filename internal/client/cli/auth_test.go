package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/profilehub/profilehub/internal/client/api"
	"github.com/profilehub/profilehub/internal/client/config"
	"github.com/profilehub/profilehub/internal/common"
)

// fakeAPI is a scriptable stub of the backend client.
type fakeAPI struct {
	loggedIn bool

	registerErr error
	loginErr    error
	refreshErr  error
	logoutErr   error

	registered *api.RegisterParams
	loginEmail string
	loginPass  string

	updateParams *api.UpdateProfileParams
	deleteCalled bool
	deleteResult bool

	user *api.User
}

func (f *fakeAPI) LoggedIn() bool { return f.loggedIn }

func (f *fakeAPI) Register(ctx context.Context, p api.RegisterParams) (*api.TokenResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = &p
	f.loggedIn = true
	return &api.TokenResponse{User: api.User{ID: 1, Username: p.Username, Email: p.Email}}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.TokenResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loginEmail = email
	f.loginPass = password
	f.loggedIn = true
	return &api.TokenResponse{User: api.User{ID: 1, Username: "alice", Email: email}}, nil
}

func (f *fakeAPI) Refresh(ctx context.Context) (*api.TokenResponse, error) {
	if f.refreshErr != nil {
		if errors.Is(f.refreshErr, common.ErrRefreshTokenExpired) {
			f.loggedIn = false
		}
		return nil, f.refreshErr
	}
	return &api.TokenResponse{}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) (bool, error) {
	if f.logoutErr != nil {
		return false, f.logoutErr
	}
	f.loggedIn = false
	return true, nil
}

func (f *fakeAPI) Profile(ctx context.Context) (*api.User, error) {
	if f.user == nil {
		return nil, common.ErrorUnauthorized
	}
	return f.user, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, p api.UpdateProfileParams) (*api.User, error) {
	f.updateParams = &p
	u := *f.user
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	return &u, nil
}

func (f *fakeAPI) DeleteProfile(ctx context.Context) (bool, error) {
	f.deleteCalled = true
	f.loggedIn = false
	return f.deleteResult, nil
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]api.User, error) {
	if f.user == nil {
		return nil, nil
	}
	return []api.User{*f.user}, nil
}

func (f *fakeAPI) GetUser(ctx context.Context, id int64) (*api.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, common.ErrorNotFound
	}
	return f.user, nil
}

func newTestApp(t *testing.T, f *fakeAPI, input string) *App {
	t.Helper()
	return &App{
		config: &config.Config{},
		api:    f,
		reader: bufio.NewReader(strings.NewReader(input)),
	}
}

func stubInputs(t *testing.T, password string) {
	t.Helper()

	origPassword := getPassword
	t.Cleanup(func() { getPassword = origPassword })
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestRegister_SubmitsEnteredValues(t *testing.T) {
	stubInputs(t, "Passw0rd1")

	f := &fakeAPI{}
	a := newTestApp(t, f, "alice\nAlice A\na@x.com\n")

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if f.registered == nil {
		t.Fatal("register was not called")
	}
	if f.registered.Username != "alice" || f.registered.Email != "a@x.com" || f.registered.Password != "Passw0rd1" {
		t.Fatalf("unexpected params: %+v", f.registered)
	}
	if f.registered.DisplayName != "Alice A" {
		t.Fatalf("displayName not sent: %+v", f.registered)
	}
	if a.userName != "alice" {
		t.Fatalf("userName not set: %q", a.userName)
	}
}

func TestRegister_DisplayNameOptional(t *testing.T) {
	stubInputs(t, "Passw0rd1")

	f := &fakeAPI{}
	a := newTestApp(t, f, "alice\n\na@x.com\n")

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if f.registered == nil {
		t.Fatal("register was not called")
	}
	if f.registered.DisplayName != "" {
		t.Fatalf("skipped display name must stay empty: %+v", f.registered)
	}
}

func TestRegister_Conflict(t *testing.T) {
	stubInputs(t, "pw")

	f := &fakeAPI{registerErr: common.ErrorAlreadyExists}
	a := newTestApp(t, f, "alice\n\na@x.com\n")

	if err := a.Register(context.Background()); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
	if a.userName != "" {
		t.Fatal("failed register must not set userName")
	}
}

func TestLogin_SetsUserName(t *testing.T) {
	stubInputs(t, "Passw0rd1")

	f := &fakeAPI{}
	a := newTestApp(t, f, "a@x.com\n")

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if f.loginEmail != "a@x.com" || f.loginPass != "Passw0rd1" {
		t.Fatalf("unexpected credentials: %q %q", f.loginEmail, f.loginPass)
	}
	if a.userName != "alice" || !a.isLoggedIn() {
		t.Fatalf("session not established: userName=%q loggedIn=%v", a.userName, a.isLoggedIn())
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	stubInputs(t, "wrong")

	f := &fakeAPI{loginErr: common.ErrorUnauthorized}
	a := newTestApp(t, f, "a@x.com\n")

	if err := a.Login(context.Background()); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
	if a.isLoggedIn() {
		t.Fatal("failed login must not establish a session")
	}
}

func TestRefresh_ExpiredClearsSession(t *testing.T) {
	f := &fakeAPI{refreshErr: common.ErrRefreshTokenExpired}
	a := newTestApp(t, f, "")
	a.userName = "alice"

	if err := a.Refresh(context.Background()); !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want common.ErrRefreshTokenExpired, got %v", err)
	}
	if a.userName != "" {
		t.Fatal("expired session must clear userName")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	f := &fakeAPI{loggedIn: true}
	a := newTestApp(t, f, "")
	a.userName = "alice"

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if a.userName != "" || a.isLoggedIn() {
		t.Fatal("logout must clear the session")
	}
}

func TestUpdateProfile_SkipsEmptyFields(t *testing.T) {
	f := &fakeAPI{user: &api.User{ID: 1, Username: "alice", Email: "a@x.com"}}
	// skip username, set display name, skip email
	a := newTestApp(t, f, "\nAlice In Chains\n\n")

	if err := a.UpdateProfile(context.Background()); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}

	if f.updateParams == nil {
		t.Fatal("update was not called")
	}
	if f.updateParams.Username != nil || f.updateParams.Email != nil {
		t.Fatalf("skipped fields must be nil: %+v", f.updateParams)
	}
	if f.updateParams.DisplayName == nil || *f.updateParams.DisplayName != "Alice In Chains" {
		t.Fatalf("displayName not sent: %+v", f.updateParams)
	}
}

func TestUpdateProfile_NothingToUpdate(t *testing.T) {
	f := &fakeAPI{user: &api.User{ID: 1}}
	a := newTestApp(t, f, "\n\n\n")

	if err := a.UpdateProfile(context.Background()); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if f.updateParams != nil {
		t.Fatal("no request should be sent when every field is skipped")
	}
}

func TestDeleteProfile_RequiresConfirmation(t *testing.T) {
	f := &fakeAPI{loggedIn: true, deleteResult: true}

	a := newTestApp(t, f, "no\n")
	if err := a.DeleteProfile(context.Background()); err != nil {
		t.Fatalf("DeleteProfile error: %v", err)
	}
	if f.deleteCalled {
		t.Fatal("delete must not run without confirmation")
	}

	a = newTestApp(t, f, "yes\n")
	a.userName = "alice"
	if err := a.DeleteProfile(context.Background()); err != nil {
		t.Fatalf("DeleteProfile error: %v", err)
	}
	if !f.deleteCalled {
		t.Fatal("delete was not called after confirmation")
	}
	if a.userName != "" {
		t.Fatal("deleted account must clear the session")
	}
}
