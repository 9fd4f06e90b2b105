// Package tui is the terminal host: a text area, three buttons and the
// prediction history, redrawn after every render cycle.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	sessionapp "github.com/doeshing/fakenews-go/internal/application/session"
	"github.com/doeshing/fakenews-go/internal/application/view"
	"github.com/doeshing/fakenews-go/internal/domain"
)

// Cycler runs one render cycle against session state.
type Cycler interface {
	Cycle(ctx context.Context, state domain.SessionState, sub *domain.Submission) (sessionapp.CycleResult, error)
}

// focus is a stop in the Tab ring.
type focus int

const (
	focusInput focus = iota
	focusPredict
	focusClearText
	focusClearHistory
	focusCount
)

type button struct {
	label  string
	focus  focus
	action domain.Action
}

var buttons = []button{
	{label: "Predict", focus: focusPredict, action: domain.ActionPredict},
	{label: "Clear Text", focus: focusClearText, action: domain.ActionClearInput},
	{label: "Clear History", focus: focusClearHistory, action: domain.ActionClearHistory},
}

// cycleDoneMsg carries a finished render cycle back into Update.
type cycleDoneMsg struct {
	result sessionapp.CycleResult
	err    error
}

// Model is the bubbletea model for the detector screen.
type Model struct {
	ctx        context.Context
	controller Cycler

	state    domain.SessionState
	view     view.View
	err      error
	busy     bool
	focus    focus
	width    int
	textarea textarea.Model
	spinner  spinner.Model
	styles   *Styles
}

// NewModel creates the screen with a fresh session.
func NewModel(ctx context.Context, controller Cycler, inputHeight int) Model {
	if inputHeight <= 0 {
		inputHeight = domain.DefaultInputHeight
	}

	ta := textarea.New()
	ta.Placeholder = "Paste any news article text here..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(inputHeight)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	state := domain.NewSessionState(uuid.NewString())
	return Model{
		ctx:        ctx,
		controller: controller,
		state:      state,
		view:       view.Build(state, nil, nil),
		textarea:   ta,
		spinner:    s,
		styles:     NewStyles(),
		width:      80,
	}
}

// Init runs the first render cycle.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.runCycle(nil))
}

// State returns the session state as of the last completed cycle.
func (m Model) State() domain.SessionState {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		inputWidth := msg.Width - 4
		if inputWidth < 40 {
			inputWidth = 40
		}
		m.textarea.SetWidth(inputWidth)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cycleDoneMsg:
		m.busy = false
		m.state = msg.result.State
		m.view = msg.result.View
		m.err = msg.err
		m.textarea.SetValue(m.view.Input)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		return m.moveFocus(1)
	case tea.KeyShiftTab:
		return m.moveFocus(-1)
	case tea.KeyCtrlS:
		return m.submit(domain.ActionPredict)
	case tea.KeyEnter:
		if m.focus != focusInput {
			return m.submit(buttons[m.focus-focusPredict].action)
		}
	}

	if m.focus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = focus((int(m.focus) + delta + int(focusCount)) % int(focusCount))
	if m.focus == focusInput {
		return m, m.textarea.Focus()
	}
	m.textarea.Blur()
	return m, nil
}

// submit sends the current text with one trigger set.
func (m Model) submit(action domain.Action) (tea.Model, tea.Cmd) {
	sub := domain.SubmissionFor(m.textarea.Value(), action)
	m.busy = true
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runCycle(&sub))
}

func (m Model) runCycle(sub *domain.Submission) tea.Cmd {
	ctx, controller, state := m.ctx, m.controller, m.state
	return func() tea.Msg {
		result, err := controller.Cycle(ctx, state, sub)
		return cycleDoneMsg{result: result, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Fake News Detector"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Paste any news article text below to check whether it's Fake or Real."))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render("Enter News Article Text"))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.renderButtons())
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View() + " Analyzing...\n")
	}
	for _, n := range m.view.Notices {
		b.WriteString(m.styles.Notice(n.Level).Render(n.Text))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	if m.view.HasHistory() {
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render(m.rule()))
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render(domain.MsgHistoryHeader))
		b.WriteString("\n")
		b.WriteString(RenderHistory(m.styles, m.view.History))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("tab focus · enter press button · ctrl+s predict · esc quit"))
	return b.String()
}

// rule is the divider drawn above the history.
func (m Model) rule() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return strings.Repeat("─", width)
}

func (m Model) renderButtons() string {
	rendered := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		style := m.styles.Button
		if m.focus == btn.focus {
			style = m.styles.Focused
		}
		rendered = append(rendered, style.Render(btn.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderHistory draws numbered history lines, most recent first.
func RenderHistory(styles *Styles, lines []view.HistoryLine) string {
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "%d. %s → %s\n",
			line.Number,
			styles.Dim.Render(line.News),
			styles.Label(line.Label).Render(line.Result),
		)
	}
	return b.String()
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, controller Cycler, inputHeight int) error {
	p := tea.NewProgram(NewModel(ctx, controller, inputHeight), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
