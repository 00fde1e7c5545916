package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-templated/pkg/orchestrator"
	rendertemplate "github.com/goliatone/go-templated/pkg/render/template"
	"github.com/goliatone/go-templated/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var pageTemplates embed.FS

const (
	runtimePrefix = "/runtime"
	assetsPrefix  = "/assets"
)

// Option customises the server.
type Option func(*Server)

// WithLogger routes request logs to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithForm serves form for its record type. Later forms replace earlier ones
// with the same record type.
func WithForm(form Form) Option {
	return func(s *Server) {
		s.forms[form.RecordType] = form
	}
}

// WithRuntimeAssets serves the browser controller under /runtime.
func WithRuntimeAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.runtimeAssets = fsys
	}
}

// WithStylesheets serves stylesheets under /assets.
func WithStylesheets(fsys fs.FS) Option {
	return func(s *Server) {
		s.stylesheets = fsys
	}
}

// Server represents the demo form server
type Server struct {
	echo   *echo.Echo
	addr   string
	app    *orchestrator.Orchestrator
	pages  rendertemplate.TemplateRenderer
	forms  map[string]Form
	logger zerolog.Logger

	runtimeAssets fs.FS
	stylesheets   fs.FS
}

// NewServer creates a new server around app.
func NewServer(addr string, app *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if app == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	pages, err := gotemplate.New(gotemplate.WithFS(pageTemplates))
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:   e,
		addr:   addr,
		app:    app,
		pages:  pages,
		forms:  make(map[string]Form),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(server)
	}
	if len(server.forms) == 0 {
		form := UserForm()
		server.forms[form.RecordType] = form
	}

	e.Use(middleware.Recover())
	e.Use(server.requestLogger)

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all endpoints
func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	if s.runtimeAssets != nil {
		s.echo.StaticFS(runtimePrefix, s.runtimeAssets)
	}
	if s.stylesheets != nil {
		s.echo.StaticFS(assetsPrefix, s.stylesheets)
	}

	s.echo.GET("/:type/new", s.newRecord)
	s.echo.POST("/:type", s.createRecord)
	s.echo.GET("/:type/:id", s.showRecord)
	s.echo.GET("/:type/:id/edit", s.editRecord)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("templated server listening")
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.logger.Debug().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
		return nil
	}
}
