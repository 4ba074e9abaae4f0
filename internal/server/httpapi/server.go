// Package httpapi is the thin HTTP surface over the core services. It
// carries no access-control or validation logic of its own: handlers
// translate requests into service calls and service errors into status
// codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haiderzaidi/allaboutme/internal/logging"
	"github.com/haiderzaidi/allaboutme/internal/server/memories"
	"github.com/haiderzaidi/allaboutme/internal/server/session"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	logger   logging.Logger
	users    *users.Service
	memories *memories.Service
	codec    session.Codec
}

func NewServer(address string, logger logging.Logger, us *users.Service, ms *memories.Service, codec session.Codec) *Server {
	return &Server{
		address:  address,
		logger:   logger.With("module", "httpapi"),
		users:    us,
		memories: ms,
		codec:    codec,
	}
}

// Router builds the route tree. Split out of Run so tests can drive the
// handlers through httptest without binding a port.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", s.handleSignup)
		auth.POST("/signin", s.handleSignin)
	}

	// public browsing and search need no identity; search picks one up
	// when a token is present
	api.GET("/public/memories", s.handleListPublic)
	api.GET("/search/memories", s.authOptional(), s.handleSearch)
	api.GET("/memories/:id", s.authOptional(), s.handleGetMemory)

	private := api.Group("", s.authRequired())
	{
		private.GET("/profile", s.handleGetProfile)
		private.PUT("/profile", s.handleUpdateProfile)
		private.PUT("/user/password", s.handleChangePassword)
		private.DELETE("/user", s.handleDeleteUser)

		private.GET("/memories", s.handleListOwn)
		private.POST("/memories", s.handleCreateMemory)
		private.PUT("/memories/:id", s.handleUpdateMemory)
		private.DELETE("/memories/:id", s.handleDeleteMemory)
	}

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
