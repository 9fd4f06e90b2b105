package view

import (
	"fmt"
	"testing"

	"github.com/doeshing/fakenews-go/internal/domain"
)

func TestBuildReversesAndNumbersHistory(t *testing.T) {
	state := domain.NewSessionState("s")
	for i := 1; i <= 3; i++ {
		state.History = append(state.History, domain.PredictionRecord{
			News:   fmt.Sprintf("news %d", i),
			Result: "REAL NEWS (Confidence: 60.00%)",
			Label:  domain.LabelReal,
		})
	}

	v := Build(state, nil, nil)
	if !v.HasHistory() || len(v.History) != 3 {
		t.Fatalf("history = %+v", v.History)
	}
	for i, line := range v.History {
		wantNews := fmt.Sprintf("news %d", 3-i)
		if line.Number != i+1 || line.News != wantNews {
			t.Errorf("line %d = %+v, want number %d news %q", i, line, i+1, wantNews)
		}
	}
	if v.Notices == nil {
		t.Error("notices should be an empty slice, not nil")
	}
}

func TestBuildEmptyHistory(t *testing.T) {
	state := domain.NewSessionState("s")
	state.Input = "draft"
	notice := domain.Notice{Level: domain.NoticeSuccess, Text: domain.MsgHistoryCleared}

	v := Build(state, []domain.Notice{notice}, nil)
	if v.HasHistory() {
		t.Error("empty history should not be displayed")
	}
	if v.Input != "draft" || len(v.Notices) != 1 || v.Notices[0] != notice {
		t.Errorf("unexpected view %+v", v)
	}
}
