// Package web serves the drawing upload form, the JSON API and spreadsheet
// downloads over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/a3tai/pdf-stamp-checker/internal/checker"
	"github.com/a3tai/pdf-stamp-checker/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end of the checker
type Server struct {
	config  *config.Config
	echo    *echo.Echo
	handler *Handler
}

// NewServer creates the HTTP server and registers its routes
func NewServer(cfg *config.Config, checkerService *checker.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if checkerService == nil {
		return nil, fmt.Errorf("checker service cannot be nil")
	}

	templates, err := NewTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = templates
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit(cfg)))

	s := &Server{
		config:  cfg,
		echo:    e,
		handler: NewHandler(checkerService, NewReportStore(DefaultMaxReports), cfg.Version),
	}
	s.registerRoutes()

	return s, nil
}

// bodyLimit allows a full batch of maximum size files plus form overhead
func bodyLimit(cfg *config.Config) string {
	limit := cfg.MaxFileSize*int64(cfg.MaxFiles) + 1024*1024
	return fmt.Sprintf("%dK", limit/1024+1)
}

func (s *Server) registerRoutes() {
	h := s.handler

	s.echo.GET("/", h.HandleIndex)
	s.echo.POST("/analyze", h.HandleAnalyzeForm)

	api := s.echo.Group("/api")
	api.GET("/health", h.HandleHealth)
	api.GET("/reference", h.HandleReference)
	api.POST("/analyze", h.HandleAnalyzeAPI)
	api.GET("/reports/:id", h.HandleGetReport)
	api.GET("/reports/:id/xlsx", h.HandleDownloadReport)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Address()
	log.Printf("Starting stamp checker HTTP server on http://%s", addr)
	log.Printf("Drawing directory: %s", s.config.PDFDirectory)

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	log.Printf("HTTP server stopped")
	return nil
}
