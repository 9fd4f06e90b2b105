package artifact

import (
	"errors"
	"fmt"
	"math"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// KindLogisticRegression identifies a fitted logistic-regression document.
const KindLogisticRegression = "logistic_regression"

// LogisticSpec is the on-disk form of a fitted binary logistic regression.
// Coef holds one row of weights, matching scikit-learn's binary layout.
type LogisticSpec struct {
	Kind      string      `json:"kind"`
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// LogisticRegression implements ports.Classifier.
type LogisticRegression struct {
	classes   []int
	weights   []float64
	intercept float64
}

// NewLogisticRegression validates spec and builds the model.
func NewLogisticRegression(spec LogisticSpec) (*LogisticRegression, error) {
	if err := validateBinaryClasses(spec.Classes); err != nil {
		return nil, err
	}
	if len(spec.Coef) != 1 {
		return nil, fmt.Errorf("coef must have exactly one row for a binary model, got %d", len(spec.Coef))
	}
	if len(spec.Coef[0]) == 0 {
		return nil, errors.New("coef row is empty")
	}
	if len(spec.Intercept) != 1 {
		return nil, fmt.Errorf("intercept must have exactly one entry, got %d", len(spec.Intercept))
	}
	return &LogisticRegression{
		classes:   append([]int(nil), spec.Classes...),
		weights:   spec.Coef[0],
		intercept: spec.Intercept[0],
	}, nil
}

// Classes implements ports.Classifier.
func (m *LogisticRegression) Classes() []int {
	return append([]int(nil), m.classes...)
}

// Features implements ports.Classifier.
func (m *LogisticRegression) Features() int {
	return len(m.weights)
}

// Predict implements ports.Classifier.
func (m *LogisticRegression) Predict(rows []domain.FeatureVector) ([]int, error) {
	out := make([]int, len(rows))
	for i, row := range rows {
		d, err := m.decision(row)
		if err != nil {
			return nil, err
		}
		if d > 0 {
			out[i] = m.classes[1]
		} else {
			out[i] = m.classes[0]
		}
	}
	return out, nil
}

// PredictProba implements ports.Classifier.
func (m *LogisticRegression) PredictProba(rows []domain.FeatureVector) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		d, err := m.decision(row)
		if err != nil {
			return nil, err
		}
		p := sigmoid(d)
		out[i] = []float64{1 - p, p}
	}
	return out, nil
}

func (m *LogisticRegression) decision(row domain.FeatureVector) (float64, error) {
	if err := checkColumns(row, len(m.weights)); err != nil {
		return 0, err
	}
	d := m.intercept
	for col, w := range row {
		d += m.weights[col] * w
	}
	return d, nil
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func validateBinaryClasses(classes []int) error {
	if len(classes) != 2 || classes[0] != domain.ClassFake || classes[1] != domain.ClassReal {
		return fmt.Errorf("classes must be [0 1], got %v", classes)
	}
	return nil
}

func checkColumns(row domain.FeatureVector, width int) error {
	for col := range row {
		if col < 0 || col >= width {
			return fmt.Errorf("%w: column %d, model has %d features", domain.ErrFeatureMismatch, col, width)
		}
	}
	return nil
}

var _ ports.Classifier = (*LogisticRegression)(nil)
