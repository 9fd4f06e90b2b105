package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	predictapp "github.com/doeshing/fakenews-go/internal/application/predict"
	sessionapp "github.com/doeshing/fakenews-go/internal/application/session"
	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/infrastructure/article"
	"github.com/doeshing/fakenews-go/internal/infrastructure/artifact"
	"github.com/doeshing/fakenews-go/internal/infrastructure/config"
	"github.com/doeshing/fakenews-go/internal/infrastructure/session"
	"github.com/doeshing/fakenews-go/internal/pkg/logger"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// Options controls how the container is assembled.
type Options struct {
	ConfigPath string
	Verbose    bool
	// LogOutput receives log lines; nil means stderr, or the configured log file.
	LogOutput io.Writer
	// LogFile is used when the configuration names no log file.
	LogFile string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       *logger.SlogLogger
	Vectorizer   ports.Vectorizer
	Classifier   ports.Classifier
	Predictor    *predictapp.Service
	Controller   *sessionapp.Controller
	Fetcher      ports.ArticleFetcher

	closers []io.Closer
}

// LoadConfig reads configuration without touching the artifacts.
func LoadConfig(ctx context.Context, opts Options) (*config.FileLoader, domain.Config, error) {
	loader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := loader.Load(ctx)
	if err != nil {
		return nil, domain.Config{}, fmt.Errorf("load config: %w", err)
	}
	return loader, cfg, nil
}

// BuildContainer constructs the dependency graph. Artifact load failures are fatal.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	loader, cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, ConfigLoader: loader}

	out, err := c.logOutput(opts)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	c.Logger = logger.New(out, logger.Options{Level: level, Format: cfg.Logging.Format})

	vec, clf, err := artifact.Load(cfg.Artifacts.VectorizerPath, cfg.Artifacts.ModelPath)
	if err != nil {
		c.Logger.Error("artifact load failed", err, nil)
		c.Close()
		return nil, err
	}
	c.Vectorizer = vec
	c.Classifier = clf
	c.Logger.Info("artifacts loaded", map[string]interface{}{
		"vectorizer": cfg.Artifacts.VectorizerPath,
		"model":      cfg.Artifacts.ModelPath,
		"features":   vec.Features(),
	})

	c.Predictor = &predictapp.Service{
		Vectorizer: vec,
		Classifier: clf,
		Logger:     c.Logger,
	}
	c.Controller = &sessionapp.Controller{
		Predictor:      c.Predictor,
		Logger:         c.Logger,
		TruncateLength: cfg.Display.TruncateLength,
	}
	c.Fetcher = article.NewFetcher(cfg.FetchTimeoutDuration(), cfg.Fetch.MaxChars, cfg.Fetch.AllowPrivateHosts)

	return c, nil
}

// SessionStore opens the configured session backend for the web UI.
func (c *Container) SessionStore(ctx context.Context) (ports.SessionStore, error) {
	store, closer, err := OpenSessionStore(ctx, c.Config)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	c.Logger.Info("session store ready", map[string]interface{}{
		"backend": backendName(c.Config),
		"ttl":     c.Config.SessionTTLDuration().String(),
	})
	return store, nil
}

// OpenSessionStore opens the backend named by cfg. Redis is pinged before it is returned;
// the closer is nil for the in-memory store.
func OpenSessionStore(ctx context.Context, cfg domain.Config) (ports.SessionStore, io.Closer, error) {
	ttl := cfg.SessionTTLDuration()
	if backendName(cfg) != domain.SessionBackendRedis {
		return session.NewMemoryStore(ttl), nil, nil
	}
	store, err := session.OpenRedisStore(cfg.Server.RedisURL, ttl)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store, nil
}

// ProbeSessionStore opens and closes the configured backend, reporting its name.
func ProbeSessionStore(ctx context.Context, cfg domain.Config) (string, error) {
	_, closer, err := OpenSessionStore(ctx, cfg)
	if err != nil {
		return "", err
	}
	if closer != nil {
		closer.Close()
	}
	return backendName(cfg), nil
}

func backendName(cfg domain.Config) string {
	if strings.EqualFold(cfg.Server.SessionBackend, domain.SessionBackendRedis) {
		return domain.SessionBackendRedis
	}
	return domain.SessionBackendMemory
}

// Close releases resources owned by the container.
func (c *Container) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

func (c *Container) logOutput(opts Options) (io.Writer, error) {
	if opts.LogOutput != nil {
		return opts.LogOutput, nil
	}
	path := c.Config.Logging.File
	if path == "" {
		path = opts.LogFile
	}
	if path == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	c.closers = append(c.closers, f)
	return f, nil
}
