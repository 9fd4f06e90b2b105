package domain_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// TestTruncateDisplay tests history display truncation
func TestTruncateDisplay(t *testing.T) {
	long := strings.Repeat("a", 81)
	exact := strings.Repeat("b", 80)
	accented := strings.Repeat("é", 85)

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "short text unchanged", text: "Breaking: stocks rise", max: 80, want: "Breaking: stocks rise"},
		{name: "exactly at limit unchanged", text: exact, max: 80, want: exact},
		{name: "one over the limit is cut", text: long, max: 80, want: strings.Repeat("a", 80) + "..."},
		{name: "multi-byte text cut on code points", text: accented, max: 80, want: strings.Repeat("é", 80) + "..."},
		{name: "zero max falls back to default", text: long, max: 0, want: strings.Repeat("a", 80) + "..."},
		{name: "empty text", text: "", max: 80, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.TruncateDisplay(tt.text, tt.max)
			if got != tt.want {
				t.Errorf("TruncateDisplay() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("TruncateDisplay() produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestPredictionResultFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^(🟥 FAKE|🟩 REAL) NEWS \(Confidence: \d+\.\d{2}%\)$`)

	tests := []struct {
		pred domain.Prediction
		want string
	}{
		{domain.Prediction{Label: domain.LabelFake, Confidence: 0.97123}, "🟥 FAKE NEWS (Confidence: 97.12%)"},
		{domain.Prediction{Label: domain.LabelReal, Confidence: 0.64}, "🟩 REAL NEWS (Confidence: 64.00%)"},
		{domain.Prediction{Label: domain.LabelReal, Confidence: 1}, "🟩 REAL NEWS (Confidence: 100.00%)"},
	}

	for _, tt := range tests {
		got := tt.pred.Result()
		if got != tt.want {
			t.Errorf("Result() = %q, want %q", got, tt.want)
		}
		if !pattern.MatchString(got) {
			t.Errorf("Result() = %q does not match %s", got, pattern)
		}
	}
}

func TestLabelForClass(t *testing.T) {
	if l, err := domain.LabelForClass(0); err != nil || l != domain.LabelFake {
		t.Fatalf("class 0 = %v, %v", l, err)
	}
	if l, err := domain.LabelForClass(1); err != nil || l != domain.LabelReal {
		t.Fatalf("class 1 = %v, %v", l, err)
	}
	if _, err := domain.LabelForClass(2); !errors.Is(err, domain.ErrUnknownClass) {
		t.Fatalf("class 2 error = %v, want ErrUnknownClass", err)
	}
}

func TestNewPredictionRecord(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	pred := domain.Prediction{Label: domain.LabelFake, Confidence: 0.5}

	rec := domain.NewPredictionRecord(strings.Repeat("x", 100), pred, 80, now)
	if !strings.HasSuffix(rec.News, domain.Ellipsis) || utf8.RuneCountInString(rec.News) != 83 {
		t.Errorf("News = %q, want 80 runes plus ellipsis", rec.News)
	}
	if rec.Result != "🟥 FAKE NEWS (Confidence: 50.00%)" {
		t.Errorf("Result = %q", rec.Result)
	}
	if rec.Label != domain.LabelFake || !rec.CreatedAt.Equal(now) {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestArtifactLoadErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := error(&domain.ArtifactLoadError{Artifact: domain.ArtifactClassifier, Path: "m.json", Err: inner})

	if !errors.Is(err, inner) {
		t.Fatal("expected ArtifactLoadError to unwrap to its cause")
	}
	var loadErr *domain.ArtifactLoadError
	if !errors.As(err, &loadErr) || loadErr.Artifact != domain.ArtifactClassifier {
		t.Fatalf("errors.As failed: %v", err)
	}
	if !strings.Contains(err.Error(), "classifier") || !strings.Contains(err.Error(), "m.json") {
		t.Errorf("Error() = %q", err.Error())
	}
}
