package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/fakenews-go/assets"
	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/pkg/filesystem"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// Environment variables recognised by the loader.
const (
	EnvConfigPath = "FAKENEWS_CONFIG"
	EnvModel      = "FAKENEWS_MODEL"
	EnvVectorizer = "FAKENEWS_VECTORIZER"
	EnvAddr       = "FAKENEWS_ADDR"
	EnvRedisURL   = "FAKENEWS_REDIS_URL"
)

// FileLoader loads YAML configuration from ~/.fakenews/config.yaml (overridable via FAKENEWS_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return applyEnv(hydrateDefaults(cfg)), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".fakenews", "config.yaml")
}

// DefaultLogPath is where the terminal UI writes logs when none is configured.
func DefaultLogPath() string {
	return filepath.Join(filesystem.UserHomeDir(), ".fakenews", "fakenews.log")
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return hydrateDefaults(domain.Config{})
	}
	return hydrateDefaults(cfg)
}

// Marshal renders cfg as YAML.
func Marshal(cfg domain.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Artifacts.ModelPath == "" {
		cfg.Artifacts.ModelPath = domain.DefaultModelPath
	}
	if cfg.Artifacts.VectorizerPath == "" {
		cfg.Artifacts.VectorizerPath = domain.DefaultVectorizerPath
	}
	if cfg.Display.TruncateLength == 0 {
		cfg.Display.TruncateLength = domain.DefaultTruncateLength
	}
	if cfg.Display.InputHeight == 0 {
		cfg.Display.InputHeight = domain.DefaultInputHeight
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = domain.DefaultServerAddr
	}
	if cfg.Server.SessionTTL == "" {
		cfg.Server.SessionTTL = domain.DefaultSessionTTL.String()
	}
	if cfg.Server.SessionBackend == "" {
		cfg.Server.SessionBackend = domain.SessionBackendMemory
	}
	if cfg.Fetch.Timeout == "" {
		cfg.Fetch.Timeout = domain.DefaultFetchTimeout.String()
	}
	if cfg.Fetch.MaxChars == 0 {
		cfg.Fetch.MaxChars = domain.DefaultFetchMaxChars
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	return cfg
}

func applyEnv(cfg domain.Config) domain.Config {
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Artifacts.ModelPath = v
	}
	if v := os.Getenv(EnvVectorizer); v != "" {
		cfg.Artifacts.VectorizerPath = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.Server.RedisURL = v
		cfg.Server.SessionBackend = domain.SessionBackendRedis
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
