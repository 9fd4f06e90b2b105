package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Label is the binary verdict produced by the classifier.
type Label string

const (
	LabelFake Label = "FAKE"
	LabelReal Label = "REAL"
)

// Class indices emitted by the classifier artifact.
const (
	ClassFake = 0
	ClassReal = 1
)

// LabelForClass maps a classifier class index onto a Label.
func LabelForClass(class int) (Label, error) {
	switch class {
	case ClassFake:
		return LabelFake, nil
	case ClassReal:
		return LabelReal, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownClass, class)
	}
}

// Marker is the coloured square shown ahead of a result.
func (l Label) Marker() string {
	if l == LabelFake {
		return "🟥"
	}
	return "🟩"
}

// FeatureVector is one sparse row of the vectorizer output, column -> weight.
type FeatureVector map[int]float64

// Prediction is the outcome of a single classification.
type Prediction struct {
	Label         Label      `json:"label"`
	Confidence    float64    `json:"confidence"`
	Probabilities [2]float64 `json:"probabilities"`
}

// Result renders the label and confidence the way history entries show it.
func (p Prediction) Result() string {
	return fmt.Sprintf("%s %s NEWS (Confidence: %.2f%%)", p.Label.Marker(), p.Label, p.Confidence*100)
}

// PredictionRecord is an immutable history entry.
type PredictionRecord struct {
	News      string    `json:"news"`
	Result    string    `json:"result"`
	Label     Label     `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPredictionRecord builds a history entry, truncating the text for display.
func NewPredictionRecord(text string, p Prediction, maxRunes int, now time.Time) PredictionRecord {
	return PredictionRecord{
		News:      TruncateDisplay(text, maxRunes),
		Result:    p.Result(),
		Label:     p.Label,
		CreatedAt: now,
	}
}

// TruncateDisplay cuts text to maxRunes code points and appends an ellipsis
// when anything was removed. Invalid maxRunes falls back to the default.
func TruncateDisplay(text string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultTruncateLength
	}
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	count := 0
	for i := range text {
		if count == maxRunes {
			return text[:i] + Ellipsis
		}
		count++
	}
	return text
}
