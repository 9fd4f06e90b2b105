package artifact

import (
	"fmt"
	"math"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// KindMultinomialNB identifies a fitted multinomial naive-Bayes document.
const KindMultinomialNB = "multinomial_nb"

// NaiveBayesSpec is the on-disk form of a fitted multinomial naive Bayes model.
type NaiveBayesSpec struct {
	Kind           string      `json:"kind"`
	Classes        []int       `json:"classes"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// MultinomialNB implements ports.Classifier.
type MultinomialNB struct {
	classes        []int
	classLogPrior  []float64
	featureLogProb [][]float64
}

// NewMultinomialNB validates spec and builds the model.
func NewMultinomialNB(spec NaiveBayesSpec) (*MultinomialNB, error) {
	if err := validateBinaryClasses(spec.Classes); err != nil {
		return nil, err
	}
	if len(spec.ClassLogPrior) != 2 {
		return nil, fmt.Errorf("class_log_prior must have 2 entries, got %d", len(spec.ClassLogPrior))
	}
	if len(spec.FeatureLogProb) != 2 {
		return nil, fmt.Errorf("feature_log_prob must have 2 rows, got %d", len(spec.FeatureLogProb))
	}
	width := len(spec.FeatureLogProb[0])
	if width == 0 || len(spec.FeatureLogProb[1]) != width {
		return nil, fmt.Errorf("feature_log_prob rows have widths %d and %d", width, len(spec.FeatureLogProb[1]))
	}
	return &MultinomialNB{
		classes:        append([]int(nil), spec.Classes...),
		classLogPrior:  spec.ClassLogPrior,
		featureLogProb: spec.FeatureLogProb,
	}, nil
}

// Classes implements ports.Classifier.
func (m *MultinomialNB) Classes() []int {
	return append([]int(nil), m.classes...)
}

// Features implements ports.Classifier.
func (m *MultinomialNB) Features() int {
	return len(m.featureLogProb[0])
}

// Predict implements ports.Classifier.
func (m *MultinomialNB) Predict(rows []domain.FeatureVector) ([]int, error) {
	out := make([]int, len(rows))
	for i, row := range rows {
		jll, err := m.jointLogLikelihood(row)
		if err != nil {
			return nil, err
		}
		if jll[1] > jll[0] {
			out[i] = m.classes[1]
		} else {
			out[i] = m.classes[0]
		}
	}
	return out, nil
}

// PredictProba implements ports.Classifier.
func (m *MultinomialNB) PredictProba(rows []domain.FeatureVector) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		jll, err := m.jointLogLikelihood(row)
		if err != nil {
			return nil, err
		}
		hi := math.Max(jll[0], jll[1])
		e0, e1 := math.Exp(jll[0]-hi), math.Exp(jll[1]-hi)
		sum := e0 + e1
		out[i] = []float64{e0 / sum, e1 / sum}
	}
	return out, nil
}

func (m *MultinomialNB) jointLogLikelihood(row domain.FeatureVector) ([2]float64, error) {
	if err := checkColumns(row, m.Features()); err != nil {
		return [2]float64{}, err
	}
	jll := [2]float64{m.classLogPrior[0], m.classLogPrior[1]}
	for col, x := range row {
		jll[0] += x * m.featureLogProb[0][col]
		jll[1] += x * m.featureLogProb[1][col]
	}
	return jll, nil
}

var _ ports.Classifier = (*MultinomialNB)(nil)
