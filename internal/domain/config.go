package domain

import "time"

// Config mirrors ~/.fakenews/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Artifacts           ArtifactSettings `yaml:"artifacts"`
	Display             DisplaySettings  `yaml:"display"`
	Server              ServerSettings   `yaml:"server"`
	Fetch               FetchSettings    `yaml:"fetch"`
	Logging             LoggingSettings  `yaml:"logging"`
}

// ArtifactSettings locates the two fitted artifacts.
type ArtifactSettings struct {
	ModelPath      string `yaml:"model_path"`
	VectorizerPath string `yaml:"vectorizer_path"`
}

// DisplaySettings tunes the presentation layer.
type DisplaySettings struct {
	TruncateLength int `yaml:"truncate_length"`
	InputHeight    int `yaml:"input_height"`
}

// ServerSettings configures the web UI.
type ServerSettings struct {
	Addr           string `yaml:"addr"`
	SessionTTL     string `yaml:"session_ttl"`
	SessionBackend string `yaml:"session_backend"`
	RedisURL       string `yaml:"redis_url"`
	GinMode        string `yaml:"gin_mode"`
}

// FetchSettings configures article downloads.
type FetchSettings struct {
	Timeout  string `yaml:"timeout"`
	MaxChars int    `yaml:"max_chars"`

	// AllowPrivateHosts lets url fetches reach loopback and private networks.
	AllowPrivateHosts bool `yaml:"allow_private_hosts"`
}

// LoggingSettings configures the slog backend.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// SessionTTLDuration parses Server.SessionTTL, falling back to the default.
func (c Config) SessionTTLDuration() time.Duration {
	return parseDurationOr(c.Server.SessionTTL, DefaultSessionTTL)
}

// FetchTimeoutDuration parses Fetch.Timeout, falling back to the default.
func (c Config) FetchTimeoutDuration() time.Duration {
	return parseDurationOr(c.Fetch.Timeout, DefaultFetchTimeout)
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
