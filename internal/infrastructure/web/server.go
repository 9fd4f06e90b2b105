// Package web serves the detector as a browser form, one session per cookie.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/doeshing/fakenews-go/assets"
	sessionapp "github.com/doeshing/fakenews-go/internal/application/session"
	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

const (
	sessionCookie = "fakenews_session"
	pageTemplate  = "index.html.tmpl"
)

// Cycler runs one render cycle against session state.
type Cycler interface {
	Cycle(ctx context.Context, state domain.SessionState, sub *domain.Submission) (sessionapp.CycleResult, error)
}

// Deps are the collaborators the web UI needs.
type Deps struct {
	Controller     Cycler
	Predictor      ports.Predictor
	Fetcher        ports.ArticleFetcher
	Store          ports.SessionStore
	Logger         *slog.Logger
	SessionTTL     time.Duration
	InputRows      int
	TruncateLength int
}

// Server is the gin-backed web UI.
type Server struct {
	deps   Deps
	engine *gin.Engine
}

// NewServer builds the router. Call gin.SetMode before this to pick the mode.
func NewServer(deps Deps) (*Server, error) {
	if deps.Controller == nil || deps.Predictor == nil || deps.Store == nil {
		return nil, errors.New("web.Server dependencies not satisfied")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.InputRows <= 0 {
		deps.InputRows = domain.DefaultInputHeight
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = domain.DefaultSessionTTL
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"ago": humanize.Time,
	}).ParseFS(assets.Templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(deps.Logger))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{deps: deps, engine: engine}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/", s.handlePage)
	engine.POST("/", s.handleSubmit)

	api := engine.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	api.POST("/predict", s.handleAPIPredict)
	api.GET("/history", s.handleAPIHistory)
	api.DELETE("/session", s.handleAPIEndSession)

	return s, nil
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("web UI listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.deps.Logger.Info("shutting down web UI")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
