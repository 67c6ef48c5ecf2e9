// Package server assembles the echo application: middleware, the assistant
// API, the catalog listings, the pages, metrics and the health checks.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ehr/backoffice/internal/config"
	"github.com/ehr/backoffice/internal/domain/assistant"
	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/internal/domain/outcome"
	"github.com/ehr/backoffice/internal/platform/db"
	"github.com/ehr/backoffice/internal/platform/middleware"
	"github.com/ehr/backoffice/internal/platform/telemetry"
	"github.com/ehr/backoffice/internal/platform/web"
)

// Version is reported by /health.
const Version = "0.1.0"

// ShutdownTimeout bounds graceful shutdown after the run context ends.
const ShutdownTimeout = 10 * time.Second

type Server struct {
	cfg    *config.Config
	logger zerolog.Logger
	echo   *echo.Echo
}

// New wires every route. dbCheck may be nil; when set, /health/db reports
// on it.
func New(cfg *config.Config, logger zerolog.Logger, store *catalog.Store, dbCheck db.Pinger) (*Server, error) {
	gen, err := outcome.NewGenerator(outcome.WithVerificationSuccessRate(cfg.VerificationSuccessRate))
	if err != nil {
		return nil, fmt.Errorf("outcome generator: %w", err)
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	// Clients connect directly; forwarding headers are never trusted.
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	metrics := telemetry.New()
	e.Use(metrics.Middleware())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.Sanitize(logger))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	// RequestTimeout runs the rest of the chain on its own goroutine, so
	// Recovery has to sit below it.
	e.Use(middleware.Recovery(logger))

	api := e.Group("/api", middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	v1 := api.Group("/v1", middleware.ETag(middleware.CatalogCacheConfig()))

	svc := assistant.NewService(store, gen)
	svc.SetRecorder(metrics)
	assistant.NewHandler(svc, logger).RegisterRoutes(api, v1)
	web.NewPageHandler(store).RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": Version,
		})
	})
	e.GET("/metrics", metrics.Handler())
	if dbCheck != nil {
		e.GET("/health/db", db.HealthHandler(dbCheck))
	}

	logger.Info().
		Int("patients", store.Len(catalog.KindPatients)).
		Int("claims", store.Len(catalog.KindClaims)).
		Int("care_tasks", store.Len(catalog.KindCareTasks)).
		Float64("verification_success_rate", gen.SuccessRate()).
		Msg("routes registered")

	return &Server{cfg: cfg, logger: logger, echo: e}, nil
}

// Handler exposes the echo instance, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is done, then shuts down within ShutdownTimeout. If ln
// is nil the server listens on :PORT.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	if ln != nil {
		s.echo.Listener = ln
	}
	addr := ":" + s.cfg.Port

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info().Str("addr", addr).Msg("starting server")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	<-errCh
	s.logger.Info().Msg("server stopped")
	return nil
}
