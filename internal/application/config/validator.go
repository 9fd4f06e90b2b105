package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateArtifacts(cfg.Artifacts); err != nil {
		return err
	}
	if err := validateDisplay(cfg.Display); err != nil {
		return err
	}
	if err := validateServer(cfg.Server); err != nil {
		return err
	}
	if err := validateFetch(cfg.Fetch); err != nil {
		return err
	}
	return validateLogging(cfg.Logging)
}

func validateArtifacts(a domain.ArtifactSettings) error {
	if strings.TrimSpace(a.ModelPath) == "" {
		return errors.New("artifacts.model_path must be set")
	}
	if strings.TrimSpace(a.VectorizerPath) == "" {
		return errors.New("artifacts.vectorizer_path must be set")
	}
	return nil
}

func validateDisplay(d domain.DisplaySettings) error {
	if d.TruncateLength <= 0 {
		return fmt.Errorf("display.truncate_length must be > 0")
	}
	if d.InputHeight <= 0 {
		return fmt.Errorf("display.input_height must be > 0")
	}
	return nil
}

func validateServer(s domain.ServerSettings) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	if _, err := time.ParseDuration(s.SessionTTL); err != nil {
		return fmt.Errorf("server.session_ttl invalid: %w", err)
	}
	switch strings.ToLower(s.SessionBackend) {
	case domain.SessionBackendMemory:
	case domain.SessionBackendRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("server.redis_url is required for the redis session backend")
		}
	default:
		return fmt.Errorf("server.session_backend must be memory|redis, got %s", s.SessionBackend)
	}
	switch s.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server.gin_mode must be debug|release|test, got %s", s.GinMode)
	}
	return nil
}

func validateFetch(f domain.FetchSettings) error {
	if _, err := time.ParseDuration(f.Timeout); err != nil {
		return fmt.Errorf("fetch.timeout invalid: %w", err)
	}
	if f.MaxChars <= 0 {
		return fmt.Errorf("fetch.max_chars must be > 0")
	}
	return nil
}

func validateLogging(l domain.LoggingSettings) error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text|json, got %s", l.Format)
	}
	return nil
}
