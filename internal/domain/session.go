package domain

import (
	"strings"
	"time"
)

// Command is a deferred instruction applied at the start of the next render cycle.
type Command string

const (
	CommandNone       Command = ""
	CommandClearInput Command = "clear_input"
)

// SessionState is everything one user session carries between render cycles.
type SessionState struct {
	ID        string             `json:"id"`
	History   []PredictionRecord `json:"history"`
	Input     string             `json:"input"`
	Pending   Command            `json:"pending,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewSessionState returns the defaults for a session seen for the first time.
func NewSessionState(id string) SessionState {
	return SessionState{
		ID:      id,
		History: []PredictionRecord{},
	}
}

// Action is the single effect a submission requests.
type Action string

const (
	ActionNone         Action = ""
	ActionPredict      Action = "predict"
	ActionClearInput   Action = "clear_input"
	ActionClearHistory Action = "clear_history"
)

// ParseAction maps a form value onto an Action. Unknown values yield ActionNone.
func ParseAction(v string) Action {
	switch Action(strings.ToLower(strings.TrimSpace(v))) {
	case ActionPredict:
		return ActionPredict
	case ActionClearInput:
		return ActionClearInput
	case ActionClearHistory:
		return ActionClearHistory
	default:
		return ActionNone
	}
}

// Submission is one atomic form submission.
type Submission struct {
	Text         string
	Predict      bool
	ClearInput   bool
	ClearHistory bool
}

// SubmissionFor builds a submission carrying exactly one trigger.
func SubmissionFor(text string, action Action) Submission {
	sub := Submission{Text: text}
	switch action {
	case ActionPredict:
		sub.Predict = true
	case ActionClearInput:
		sub.ClearInput = true
	case ActionClearHistory:
		sub.ClearHistory = true
	}
	return sub
}

// Action resolves the triggers; clear-input wins over clear-history, which wins over predict.
func (s Submission) Action() Action {
	switch {
	case s.ClearInput:
		return ActionClearInput
	case s.ClearHistory:
		return ActionClearHistory
	case s.Predict:
		return ActionPredict
	default:
		return ActionNone
	}
}

// NoticeLevel selects how a transient notice is styled.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a one-shot message shown for the render cycle that produced it.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}
