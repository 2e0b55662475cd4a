package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ebi50/training28-sub000/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.err != nil:
		content = dangerStyle.Render("Error: " + m.err.Error())
	case m.loading && m.plan == nil:
		content = mutedStyle.Render("Loading week of " + utils.FormatDate(m.week) + "...")
	default:
		content = m.viewTab()
	}

	parts := []string{m.viewTabs(), "", docStyle.Render(content)}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tab == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	week := mutedStyle.Render("  week of " + utils.FormatDate(m.week))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, week)...)
}

func (m Model) viewTab() string {
	switch m.tab {
	case TabLoad:
		return m.loadView.View()
	case TabQuality:
		return m.quality.View()
	}
	if m.plan == nil {
		return mutedStyle.Render("Nothing planned for this week")
	}

	var b strings.Builder
	b.WriteString(PlanHeader(*m.plan))
	b.WriteString("\n\n")
	b.WriteString(m.sessions.View())
	if s, ok := m.Selected(); ok {
		b.WriteString("\n\n")
		b.WriteString(SessionLine(s))
		if s.Description != "" {
			b.WriteString("\n" + s.Description)
		}
		if s.Notes != "" {
			b.WriteString("\n" + warningStyle.Render(s.Notes))
		}
	}
	return b.String()
}
