package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// Styles for the detector screen.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Dim      lipgloss.Style
	Button   lipgloss.Style
	Focused  lipgloss.Style
}

func NewStyles() *Styles {
	button := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		Button:   button,
		Focused:  button.BorderForeground(lipgloss.Color("12")).Bold(true),
	}
}

// Notice picks the style for a notice level.
func (s *Styles) Notice(level domain.NoticeLevel) lipgloss.Style {
	switch level {
	case domain.NoticeSuccess:
		return s.Success
	case domain.NoticeWarning:
		return s.Warning
	case domain.NoticeError:
		return s.Error
	default:
		return s.Info
	}
}

// Label colours a FAKE/REAL result.
func (s *Styles) Label(label domain.Label) lipgloss.Style {
	if label == domain.LabelFake {
		return s.Error.Bold(true)
	}
	return s.Success.Bold(true)
}
