// Package tui is the interactive weekly plan browser.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// loadWindowDays is how much load history the Load tab shows.
const loadWindowDays = 28

// Source feeds the browser. Plan returns storage.ErrNotFound for an unplanned week.
type Source interface {
	Plan(weekStart time.Time) (models.WeeklyPlan, error)
	Regenerate(weekStart time.Time) (models.WeeklyPlan, error)
	Loads(from, to string) ([]models.DailyLoad, error)
}

type Tab int

const (
	TabWeek Tab = iota
	TabLoad
	TabQuality
)

var tabTitles = []string{"Week", "Load", "Quality"}

type weekLoadedMsg struct {
	week        time.Time
	plan        *models.WeeklyPlan
	loads       []models.DailyLoad
	regenerated bool
	err         error
}

type Model struct {
	source   Source
	keys     KeyMap
	help     help.Model
	tab      Tab
	week     time.Time
	plan     *models.WeeklyPlan
	loads    []models.DailyLoad
	sessions table.Model
	loadView viewport.Model
	quality  viewport.Model
	status   string
	err      error
	loading  bool
	quitting bool
	width    int
	height   int
}

func NewModel(source Source, week time.Time) Model {
	t := table.New(
		table.WithColumns(sessionColumns()),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	return Model{
		source:   source,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		week:     utils.WeekStart(week),
		sessions: t,
		loadView: viewport.New(80, 16),
		quality:  viewport.New(80, 16),
		loading:  true,
	}
}

func sessionColumns() []table.Column {
	return []table.Column{
		{Title: "Day", Width: 10},
		{Title: "Time", Width: 11},
		{Title: "Type", Width: 5},
		{Title: "Min", Width: 5},
		{Title: "TSS", Width: 5},
		{Title: "Where", Width: 8},
		{Title: "Focus", Width: 12},
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch(m.week)
}

func (m Model) fetch(week time.Time) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		msg := weekLoadedMsg{week: week}
		plan, err := src.Plan(week)
		switch {
		case err == nil:
			msg.plan = &plan
		case !errors.Is(err, storage.ErrNotFound):
			msg.err = err
			return msg
		}
		msg.loads, msg.err = loadsFor(src, week)
		return msg
	}
}

func (m Model) regenerate(week time.Time) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		plan, err := src.Regenerate(week)
		if err != nil {
			return weekLoadedMsg{week: week, err: err, regenerated: true}
		}
		loads, err := loadsFor(src, week)
		return weekLoadedMsg{week: week, plan: &plan, loads: loads, regenerated: true, err: err}
	}
}

func loadsFor(src Source, week time.Time) ([]models.DailyLoad, error) {
	end := week.AddDate(0, 0, 6)
	return src.Loads(utils.FormatDate(end.AddDate(0, 0, -loadWindowDays+1)), utils.FormatDate(end))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		h := max(msg.Height-8, 4)
		m.sessions.SetHeight(min(h, 12))
		m.loadView.Width, m.loadView.Height = msg.Width-4, h
		m.quality.Width, m.quality.Height = msg.Width-4, h
		return m, nil

	case weekLoadedMsg:
		if !msg.week.Equal(m.week) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.status = ""
			return m, nil
		}
		m.plan = msg.plan
		m.loads = msg.loads
		m.refresh()
		switch {
		case m.plan == nil:
			m.status = "No plan for this week. Press 'g' to generate."
		case msg.regenerated:
			m.status = fmt.Sprintf("Generated revision %d", m.plan.Revision)
		default:
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % Tab(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab + Tab(len(tabTitles)) - 1) % Tab(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.PrevWeek):
			return m.moveTo(m.week.AddDate(0, 0, -7))
		case key.Matches(msg, m.keys.NextWeek):
			return m.moveTo(m.week.AddDate(0, 0, 7))
		case key.Matches(msg, m.keys.Generate):
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.status = "Generating..."
			return m, m.regenerate(m.week)
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabWeek:
		m.sessions, cmd = m.sessions.Update(msg)
	case TabLoad:
		m.loadView, cmd = m.loadView.Update(msg)
	case TabQuality:
		m.quality, cmd = m.quality.Update(msg)
	}
	return m, cmd
}

func (m Model) moveTo(week time.Time) (tea.Model, tea.Cmd) {
	m.week = week
	m.plan = nil
	m.loads = nil
	m.err = nil
	m.loading = true
	m.status = ""
	m.refresh()
	return m, m.fetch(week)
}

// refresh pushes the current plan and loads into the child components.
func (m *Model) refresh() {
	var rows []table.Row
	if m.plan != nil {
		for _, s := range m.plan.Sessions {
			rows = append(rows, sessionRow(s))
		}
	}
	m.sessions.SetRows(rows)
	m.sessions.SetCursor(0)

	m.loadView.SetContent(RenderLoad(m.loads))
	if m.plan != nil {
		m.quality.SetContent(RenderQuality(m.plan.Quality))
	} else {
		m.quality.SetContent(mutedStyle.Render("No plan loaded"))
	}
}

func sessionRow(s models.TrainingSession) table.Row {
	day := s.Date
	if d, err := utils.ParseDate(s.Date); err == nil {
		day = d.Format("Mon 02 Jan")
	}
	window := ""
	if s.TimeSlot != nil {
		window = s.TimeSlot.StartTime + "-" + s.TimeSlot.EndTime
	}
	where := "outdoor"
	if s.Indoor {
		where = "indoor"
	}
	return table.Row{
		day,
		window,
		string(s.Type),
		fmt.Sprint(s.DurationMin),
		fmt.Sprint(s.TargetTSS),
		where,
		string(s.SubType),
	}
}

// Selected returns the session under the cursor on the Week tab.
func (m Model) Selected() (models.TrainingSession, bool) {
	if m.plan == nil {
		return models.TrainingSession{}, false
	}
	i := m.sessions.Cursor()
	if i < 0 || i >= len(m.plan.Sessions) {
		return models.TrainingSession{}, false
	}
	return m.plan.Sessions[i], true
}

func (m Model) Week() time.Time { return m.week }

func (m Model) ActiveTab() Tab { return m.tab }
