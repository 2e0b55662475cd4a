package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Ebi50/training28-sub000/internal/models"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	sessionStyles = map[models.SessionType]lipgloss.Style{
		models.SessionHIT: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		models.SessionLIT: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		models.SessionREC: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
)

func sessionStyle(t models.SessionType) lipgloss.Style {
	if s, ok := sessionStyles[t]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func severityStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityError:
		return dangerStyle
	case models.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}
