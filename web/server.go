package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"rentai/config"
	"rentai/services"
	"rentai/storage"
	"rentai/utils"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end: HTML pages plus the JSON API.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	sessions *SessionStore
	logger   *utils.Logger
}

// NewServer wires the page and API controllers onto a new echo instance.
func NewServer(cfg *config.Config, store storage.CatalogReader, search services.SearchBackend, logger *utils.Logger) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	sessions := NewSessionStore(cfg.SessionTTL)

	pages := NewPageController(store, sessions, search, logger)
	pages.Register(e)

	api := NewAPIController(store, services.NewInsightService(logger), logger)
	api.Register(e.Group("/api/v1"))

	return &Server{echo: e, cfg: cfg, sessions: sessions, logger: logger}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Sessions returns the saved-page session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.sessions.RunJanitor(ctx, s.cfg.SessionTTL/2)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[web] Listening on %s", s.cfg.HTTPAddr)
		errCh <- s.echo.Start(s.cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("[web] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func requestLogger(logger *utils.Logger) echo.MiddlewareFunc {
	z := logger.Zap()
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				z.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			z.Debug("request", fields...)
			return nil
		},
	})
}
