// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The fitted vectorizer and classifier are consumed only
// through the interfaces below, so the prediction pipeline never depends on how an
// artifact was serialized or which algorithm it carries.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Vectorizer, SessionStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.fakenews/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Vectorizer turns raw documents into fixed-width sparse feature rows.
type Vectorizer interface {
	Transform(docs []string) ([]domain.FeatureVector, error)
	// Features reports the width of every row Transform produces.
	Features() int
}

// Classifier is a fitted binary model over vectorizer output.
type Classifier interface {
	Predict(rows []domain.FeatureVector) ([]int, error)
	PredictProba(rows []domain.FeatureVector) ([][]float64, error)
	Classes() []int
	Features() int
}

// Predictor is the use-case boundary for classifying one text.
type Predictor interface {
	Predict(ctx context.Context, text string) (domain.Prediction, error)
}

// SessionStore keeps per-session state between render cycles.
// GetOrInit never overwrites a state that already exists and never adopts an
// id it does not hold.
type SessionStore interface {
	GetOrInit(ctx context.Context, id string) (domain.SessionState, error)
	Set(ctx context.Context, state domain.SessionState) error
	Delete(ctx context.Context, id string) error
}

// ArtifactInspector reports what an artifact file contains without wiring it up.
type ArtifactInspector interface {
	Describe(artifact domain.ArtifactKind, path string) (domain.ArtifactSummary, error)
}

// ArticleFetcher downloads a web page and returns its readable text.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
