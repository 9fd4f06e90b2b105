package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/fakenews-go/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubInspector map[domain.ArtifactKind]domain.ArtifactSummary

func (s stubInspector) Describe(kind domain.ArtifactKind, path string) (domain.ArtifactSummary, error) {
	summary, found := s[kind]
	if !found {
		return domain.ArtifactSummary{}, &domain.ArtifactLoadError{Artifact: kind, Path: path, Err: errors.New("missing")}
	}
	return summary, nil
}

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Artifacts:           domain.ArtifactSettings{ModelPath: "m.json", VectorizerPath: "v.json"},
		Display:             domain.DisplaySettings{TruncateLength: 80, InputHeight: 10},
		Server:              domain.ServerSettings{Addr: ":8501", SessionTTL: "30m", SessionBackend: domain.SessionBackendMemory, GinMode: "release"},
		Fetch:               domain.FetchSettings{Timeout: "15s", MaxChars: 100},
		Logging:             domain.LoggingSettings{Level: "info", Format: "text"},
	}
}

func statusOf(report domain.HealthReport, name string) domain.HealthStatus {
	for _, c := range report.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}

func TestRunAllHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: validConfig()},
		Inspector: stubInspector{
			domain.ArtifactVectorizer: {Kind: "tfidf", Features: 5},
			domain.ArtifactClassifier: {Kind: "logistic_regression", Features: 5},
		},
		Sessions: func(context.Context, domain.Config) (string, error) { return "memory", nil },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for _, name := range []string{"Config file", "Config values", "Vectorizer", "Classifier", "Feature width", "Session store"} {
		if got := statusOf(report, name); got != domain.HealthOK {
			t.Errorf("%s status = %q, want ok", name, got)
		}
	}
}

func TestRunReportsMismatchAndMissingArtifacts(t *testing.T) {
	tests := []struct {
		name      string
		inspector stubInspector
		failing   string
	}{
		{
			name: "feature mismatch",
			inspector: stubInspector{
				domain.ArtifactVectorizer: {Features: 5},
				domain.ArtifactClassifier: {Features: 6},
			},
			failing: "Feature width",
		},
		{
			name:      "missing model",
			inspector: stubInspector{domain.ArtifactVectorizer: {Features: 5}},
			failing:   "Classifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &Service{ConfigProvider: stubConfig{cfg: validConfig()}, Inspector: tt.inspector}
			report, err := svc.Run(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if got := statusOf(report, tt.failing); got != domain.HealthError {
				t.Errorf("%s status = %q, want error", tt.failing, got)
			}
		})
	}
}

func TestRunSessionFailureOnlyWarns(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: validConfig()},
		Inspector: stubInspector{
			domain.ArtifactVectorizer: {Features: 1},
			domain.ArtifactClassifier: {Features: 1},
		},
		Sessions: func(context.Context, domain.Config) (string, error) { return "", errors.New("connection refused") },
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("session failure must not fail the run: %v", err)
	}
	if statusOf(report, "Session store") != domain.HealthWarn {
		t.Error("expected warning for session store")
	}
}

func TestRunStopsWhenConfigFails(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("bad yaml")}, Inspector: stubInspector{}}
	report, err := svc.Run(context.Background())
	if err == nil || len(report.Checks) != 1 {
		t.Fatalf("expected single failed check, got %+v (%v)", report.Checks, err)
	}
}
