// Package session runs the render cycle: one submission in, at most one effect
// applied, a fresh view out. State is passed in and returned; the controller
// keeps none of its own.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/fakenews-go/internal/application/view"
	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

// Controller applies submissions to session state.
type Controller struct {
	Predictor      ports.Predictor
	Logger         ports.Logger
	TruncateLength int
	Now            func() time.Time
}

// CycleResult is the outcome of one render cycle.
type CycleResult struct {
	State domain.SessionState
	View  view.View
}

// Cycle applies any pending command, then the submission (if any), and builds the view.
// A clear-input submission queues its command and reruns the cycle immediately so the
// buffer is empty before the input is drawn.
func (c *Controller) Cycle(ctx context.Context, state domain.SessionState, sub *domain.Submission) (CycleResult, error) {
	if c.Predictor == nil || c.Logger == nil {
		return CycleResult{}, errors.New("session.Controller dependencies not satisfied")
	}

	state = cloneState(state)
	var (
		notices    []domain.Notice
		prediction *domain.Prediction
	)

	for {
		var notice *domain.Notice
		state, notice = c.applyPending(state)
		if notice != nil {
			notices = append(notices, *notice)
		}
		if sub == nil {
			break
		}

		current := *sub
		sub = nil
		state.Input = current.Text

		outcome, err := c.apply(ctx, state, current)
		if err != nil {
			state.UpdatedAt = c.now()
			return CycleResult{State: state, View: view.Build(state, notices, nil)}, err
		}
		state = outcome.state
		if outcome.notice != nil {
			notices = append(notices, *outcome.notice)
		}
		if outcome.prediction != nil {
			prediction = outcome.prediction
		}
		if !outcome.rerun {
			break
		}
		c.Logger.Debug("rerunning render cycle", map[string]interface{}{"session": state.ID})
	}

	state.UpdatedAt = c.now()
	return CycleResult{State: state, View: view.Build(state, notices, prediction)}, nil
}

type outcome struct {
	state      domain.SessionState
	notice     *domain.Notice
	prediction *domain.Prediction
	rerun      bool
}

func (c *Controller) apply(ctx context.Context, state domain.SessionState, sub domain.Submission) (outcome, error) {
	switch sub.Action() {
	case domain.ActionClearInput:
		state.Pending = domain.CommandClearInput
		return outcome{state: state, rerun: true}, nil

	case domain.ActionClearHistory:
		state.History = []domain.PredictionRecord{}
		c.Logger.Info("history cleared", map[string]interface{}{"session": state.ID})
		return outcome{state: state, notice: &domain.Notice{Level: domain.NoticeSuccess, Text: domain.MsgHistoryCleared}}, nil

	case domain.ActionPredict:
		if strings.TrimSpace(sub.Text) == "" {
			return outcome{state: state, notice: &domain.Notice{Level: domain.NoticeWarning, Text: domain.MsgEmptyInput}}, nil
		}
		pred, err := c.Predictor.Predict(ctx, sub.Text)
		if err != nil {
			c.Logger.Error("prediction failed", err, map[string]interface{}{"session": state.ID})
			return outcome{}, fmt.Errorf("predict: %w", err)
		}
		record := domain.NewPredictionRecord(sub.Text, pred, c.TruncateLength, c.now())
		state.History = append(state.History, record)
		return outcome{
			state:      state,
			notice:     predictionNotice(pred),
			prediction: &pred,
		}, nil
	}
	return outcome{state: state}, nil
}

// applyPending drains the command queue; it holds at most one command.
func (c *Controller) applyPending(state domain.SessionState) (domain.SessionState, *domain.Notice) {
	switch state.Pending {
	case domain.CommandClearInput:
		state.Input = ""
		state.Pending = domain.CommandNone
		return state, &domain.Notice{Level: domain.NoticeSuccess, Text: domain.MsgInputCleared}
	default:
		state.Pending = domain.CommandNone
		return state, nil
	}
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func predictionNotice(p domain.Prediction) *domain.Notice {
	level := domain.NoticeSuccess
	if p.Label == domain.LabelFake {
		level = domain.NoticeError
	}
	return &domain.Notice{Level: level, Text: domain.MsgPredictionPrefix + p.Result()}
}

func cloneState(state domain.SessionState) domain.SessionState {
	history := make([]domain.PredictionRecord, len(state.History))
	copy(history, state.History)
	state.History = history
	return state
}
