package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/internal/profile"
	apiv1 "github.com/posawiki/posawiki/server/router/api/v1"
	"github.com/posawiki/posawiki/server/router/rss"
	"github.com/posawiki/posawiki/server/service/tagauthority"
	"github.com/posawiki/posawiki/store"
)

type Server struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	TagAuthority *tagauthority.Service

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	secret := profile.Secret
	if secret == "" {
		// Tokens minted against a generated secret die with the process.
		secret = uuid.New().String()
		slog.Warn("no token secret configured, generated an ephemeral one")
	}

	tagAuthority, err := tagauthority.NewService(ctx, store)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tag authority service")
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(echomw.Recover())

	s := &Server{
		Secret:       secret,
		Profile:      profile,
		Store:        store,
		TagAuthority: tagAuthority,
		echoServer:   echoServer,
	}

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	apiv1.NewAPIV1Service(secret, profile, store, tagAuthority).RegisterRoutes(echoServer)
	rss.NewRSSService(profile, store).RegisterRoutes(echoServer)

	return s, nil
}

func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	return s.echoServer.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server shutdown")
}

// GetEcho exposes the router for tests.
func (s *Server) GetEcho() *echo.Echo {
	return s.echoServer
}
