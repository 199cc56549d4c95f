// Package http exposes the session and user services over a JSON REST API.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/profilehub/profilehub/internal/logging"
	"github.com/profilehub/profilehub/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	sessions *services.SessionService
	users    *services.UsersService
	logger   logging.Logger
}

func NewServer(address string, l logging.Logger, ss *services.SessionService, us *services.UsersService) *Server {
	return &Server{
		address:  address,
		sessions: ss,
		users:    us,
		logger:   l.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.buildRouter(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger))

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)

	authed := authGroup.Group("")
	authed.Use(RequireAuth(s.sessions))
	authed.POST("/logout", s.logout)
	authed.GET("/profile", s.profile)
	authed.PATCH("/profile", s.updateProfile)
	authed.DELETE("/profile", s.deleteProfile)

	usersGroup := api.Group("/users")
	usersGroup.GET("", s.listUsers)
	usersGroup.GET("/:id", s.getUser)

	usersAuthed := usersGroup.Group("")
	usersAuthed.Use(RequireAuth(s.sessions))
	usersAuthed.POST("", s.createUser)
	usersAuthed.PUT("/:id", s.updateUser)
	usersAuthed.DELETE("/:id", s.deleteUser)

	return router
}
