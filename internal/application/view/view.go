// Package view builds the read model every host renders after a render cycle.
package view

import (
	"time"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// HistoryLine is one numbered entry of the displayed history.
type HistoryLine struct {
	Number    int          `json:"number"`
	News      string       `json:"news"`
	Result    string       `json:"result"`
	Label     domain.Label `json:"label"`
	CreatedAt time.Time    `json:"created_at"`
}

// View is what a host draws: the form, transient notices and the history.
type View struct {
	Input      string             `json:"input"`
	Notices    []domain.Notice    `json:"notices"`
	Prediction *domain.Prediction `json:"prediction,omitempty"`
	History    []HistoryLine      `json:"history"`
}

// HasHistory reports whether the history section should be drawn.
func (v View) HasHistory() bool {
	return len(v.History) > 0
}

// Build derives the view from session state, most recent prediction first.
func Build(state domain.SessionState, notices []domain.Notice, prediction *domain.Prediction) View {
	lines := make([]HistoryLine, 0, len(state.History))
	for i := len(state.History) - 1; i >= 0; i-- {
		rec := state.History[i]
		lines = append(lines, HistoryLine{
			Number:    len(lines) + 1,
			News:      rec.News,
			Result:    rec.Result,
			Label:     rec.Label,
			CreatedAt: rec.CreatedAt,
		})
	}
	if notices == nil {
		notices = []domain.Notice{}
	}
	return View{
		Input:      state.Input,
		Notices:    notices,
		Prediction: prediction,
		History:    lines,
	}
}
