// Package server initializes and runs the application server.
// It opens the database, applies schema migrations, wires the session and
// user services, handles graceful shutdown, and starts the HTTP server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/profilehub/profilehub/internal/logging"
	"github.com/profilehub/profilehub/internal/server/config"
	"github.com/profilehub/profilehub/internal/server/repositories/repomanager"
	"github.com/profilehub/profilehub/internal/server/services"

	hs "github.com/profilehub/profilehub/internal/server/http"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	sessionService *services.SessionService
	usersService   *services.UsersService
}

func NewApp(cfg *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	ss := services.NewSessionService(db, m, cfg)
	us := services.NewUsersService(db, m, cfg)

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		repomanager:    m,
		sessionService: ss,
		usersService:   us,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := hs.NewServer(app.config.EndpointAddrHTTP, app.logger, app.sessionService, app.usersService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
