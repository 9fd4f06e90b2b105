package doctor

import (
	"context"
	"errors"
	"fmt"

	configapp "github.com/doeshing/fakenews-go/internal/application/config"
	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// SessionProbe opens the configured session backend and reports which one it is.
type SessionProbe func(ctx context.Context, cfg domain.Config) (string, error)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Inspector      ports.ArtifactInspector
	Sessions       SessionProbe
}

// Run executes checks and returns a report. The error is non-nil when any check failed.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	if s.ConfigProvider == nil || s.Inspector == nil {
		return domain.HealthReport{}, errors.New("doctor.Service dependencies not satisfied")
	}
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded (format %s)", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", "valid"))
	}

	vec, vecErr := s.Inspector.Describe(domain.ArtifactVectorizer, cfg.Artifacts.VectorizerPath)
	checks = append(checks, artifactCheck("Vectorizer", vec, vecErr))
	clf, clfErr := s.Inspector.Describe(domain.ArtifactClassifier, cfg.Artifacts.ModelPath)
	checks = append(checks, artifactCheck("Classifier", clf, clfErr))

	if vecErr == nil && clfErr == nil {
		if vec.Features == clf.Features {
			checks = append(checks, ok("Feature width", fmt.Sprintf("%d features on both sides", vec.Features)))
		} else {
			checks = append(checks, fail("Feature width",
				fmt.Sprintf("vectorizer emits %d, classifier expects %d", vec.Features, clf.Features)))
		}
	}

	if s.Sessions != nil {
		if backend, err := s.Sessions(ctx, cfg); err != nil {
			checks = append(checks, warn("Session store", fmt.Sprintf("%s: %v", cfg.Server.SessionBackend, err)))
		} else {
			checks = append(checks, ok("Session store", backend))
		}
	}

	report := domain.HealthReport{Checks: checks}
	if report.Failed() {
		return report, errors.New("one or more checks failed")
	}
	return report, nil
}

func artifactCheck(name string, s domain.ArtifactSummary, err error) domain.HealthCheck {
	if err != nil {
		return fail(name, err.Error())
	}
	return ok(name, fmt.Sprintf("%s, %d features (%s)", s.Kind, s.Features, s.Path))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
