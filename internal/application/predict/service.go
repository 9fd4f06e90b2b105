package predict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// Service turns one text into a FAKE/REAL verdict using the loaded artifacts.
type Service struct {
	Vectorizer ports.Vectorizer
	Classifier ports.Classifier
	Logger     ports.Logger
}

// Predict runs the text through the vectorizer and classifier.
func (s *Service) Predict(ctx context.Context, text string) (domain.Prediction, error) {
	if s.Vectorizer == nil || s.Classifier == nil || s.Logger == nil {
		return domain.Prediction{}, errors.New("predict.Service dependencies not satisfied")
	}
	if strings.TrimSpace(text) == "" {
		return domain.Prediction{}, domain.ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, err
	}

	start := time.Now()
	rows, err := s.Vectorizer.Transform([]string{text})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("vectorize: %w", err)
	}

	classes, err := s.Classifier.Predict(rows)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("classify: %w", err)
	}
	probs, err := s.Classifier.PredictProba(rows)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("predict proba: %w", err)
	}
	if len(classes) != 1 || len(probs) != 1 {
		return domain.Prediction{}, fmt.Errorf("classifier returned %d classes and %d probability rows for one document", len(classes), len(probs))
	}
	if len(probs[0]) != 2 {
		return domain.Prediction{}, fmt.Errorf("expected 2 class probabilities, got %d", len(probs[0]))
	}

	label, err := domain.LabelForClass(classes[0])
	if err != nil {
		return domain.Prediction{}, err
	}

	pred := domain.Prediction{
		Label:         label,
		Confidence:    probs[0][classes[0]],
		Probabilities: [2]float64{probs[0][0], probs[0][1]},
	}

	s.Logger.Debug("prediction complete", map[string]interface{}{
		"label":      string(pred.Label),
		"confidence": pred.Confidence,
		"features":   len(rows[0]),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return pred, nil
}

var _ ports.Predictor = (*Service)(nil)
