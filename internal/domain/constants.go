package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Display constants
const (
	// DefaultTruncateLength is how many code points of a news text the history shows
	DefaultTruncateLength = 80
	// Ellipsis marks a truncated history entry
	Ellipsis = "..."
	// DefaultInputHeight is the number of rows of the text entry area
	DefaultInputHeight = 10
)

// Artifact constants
const (
	// DefaultModelPath is where the classifier artifact is read from
	DefaultModelPath = "fake_news_model.json"
	// DefaultVectorizerPath is where the vectorizer artifact is read from
	DefaultVectorizerPath = "tfidf_vectorizer.json"
)

// Server constants
const (
	// DefaultServerAddr is the web UI listen address
	DefaultServerAddr = ":8501"
	// DefaultSessionTTL is how long an idle web session survives
	DefaultSessionTTL = 30 * time.Minute
	// DefaultShutdownTimeout bounds graceful shutdown of the web UI
	DefaultShutdownTimeout = 5 * time.Second
	// SessionBackendMemory keeps sessions in process memory
	SessionBackendMemory = "memory"
	// SessionBackendRedis keeps sessions in Redis
	SessionBackendRedis = "redis"
)

// Fetch constants
const (
	// DefaultFetchTimeout is the timeout for article downloads
	DefaultFetchTimeout = 15 * time.Second
	// DefaultFetchMaxChars caps extracted article text, in code points
	DefaultFetchMaxChars = 20000
)

// User-facing messages
const (
	MsgInputCleared     = "Input text cleared!"
	MsgHistoryCleared   = "Prediction history cleared!"
	MsgEmptyInput       = "Please enter some text to analyze."
	MsgPredictionPrefix = "Prediction: "
	MsgHistoryHeader    = "Prediction History"
)
