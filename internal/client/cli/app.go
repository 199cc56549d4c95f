package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/profilehub/profilehub/internal/client/api"
	"github.com/profilehub/profilehub/internal/client/config"
)

// apiClient is the surface of the backend API the CLI depends on.
// The real api.Client satisfies it; tests can provide a stub.
type apiClient interface {
	LoggedIn() bool
	Register(ctx context.Context, p api.RegisterParams) (*api.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Refresh(ctx context.Context) (*api.TokenResponse, error)
	Logout(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, p api.UpdateProfileParams) (*api.User, error)
	DeleteProfile(ctx context.Context) (bool, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	GetUser(ctx context.Context, id int64) (*api.User, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}
