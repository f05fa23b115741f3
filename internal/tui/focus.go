package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"daywise/internal/state"
)

type focusPhase int

const (
	focusIdle focusPhase = iota
	focusWork
	focusShortBreak
	focusLongBreak
	focusDone
)

type focusModel struct {
	mgr    *state.Manager
	width  int
	height int

	phase          focusPhase
	completedCount int
	targetRounds   int

	remaining time.Duration
	phaseEnd  time.Time
	startedAt time.Time

	workDuration      time.Duration
	breakDuration     time.Duration
	longBreakDuration time.Duration
}

func newFocusModel(mgr *state.Manager) focusModel {
	m := focusModel{mgr: mgr, phase: focusIdle}
	m.loadPrefs()
	return m
}

func (m *focusModel) loadPrefs() {
	t := m.mgr.State().Timer
	m.workDuration = time.Duration(t.WorkSeconds) * time.Second
	m.breakDuration = time.Duration(t.BreakSeconds) * time.Second
	m.longBreakDuration = time.Duration(t.LongBreakSeconds) * time.Second
	m.targetRounds = t.TargetRounds
}

func (m *focusModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m focusModel) running() bool {
	return m.phase == focusWork || m.phase == focusShortBreak || m.phase == focusLongBreak
}

func (m focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.running() {
			m.remaining = time.Until(m.phaseEnd)
			if m.remaining <= 0 {
				return m.advancePhase()
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if m.phase == focusIdle || m.phase == focusDone {
				return m.startSession()
			}
		case key.Matches(msg, keys.Stop):
			if m.phase != focusIdle {
				return m.cancelSession()
			}
		case key.Matches(msg, keys.Toggle):
			// Skip the rest of a break.
			if m.phase == focusShortBreak || m.phase == focusLongBreak {
				return m.startWorkPhase()
			}
		}
	}
	return m, nil
}

func (m focusModel) startSession() (focusModel, tea.Cmd) {
	m.completedCount = 0
	m.loadPrefs()
	m.startedAt = time.Now()
	return m.startWorkPhase()
}

func (m focusModel) startWorkPhase() (focusModel, tea.Cmd) {
	m.phase = focusWork
	m.remaining = m.workDuration
	m.phaseEnd = time.Now().Add(m.workDuration)
	return m, nil
}

func (m focusModel) advancePhase() (focusModel, tea.Cmd) {
	switch m.phase {
	case focusWork:
		m.completedCount++

		if m.completedCount >= m.targetRounds {
			m.phase = focusDone
			m.recordSession(true)
			return m, status("Focus session complete! \a")
		}

		if m.completedCount%4 == 0 {
			m.phase = focusLongBreak
			m.remaining = m.longBreakDuration
			m.phaseEnd = time.Now().Add(m.longBreakDuration)
		} else {
			m.phase = focusShortBreak
			m.remaining = m.breakDuration
			m.phaseEnd = time.Now().Add(m.breakDuration)
		}
		return m, status("Break time! \a")

	case focusShortBreak, focusLongBreak:
		return m.startWorkPhase()
	}
	return m, nil
}

func (m focusModel) cancelSession() (focusModel, tea.Cmd) {
	if m.completedCount > 0 {
		m.recordSession(false)
	}
	m.phase = focusIdle
	m.remaining = 0
	return m, status("Focus session cancelled")
}

// recordSession stores the finished run; only fully elapsed work
// rounds count toward WorkSeconds.
func (m *focusModel) recordSession(completed bool) {
	m.mgr.Dispatch(state.AddFocusSession{Session: state.FocusSession{
		ID:          uuid.NewString(),
		StartedAt:   m.startedAt,
		WorkSeconds: m.completedCount * int(m.workDuration.Seconds()),
		Rounds:      m.completedCount,
		Completed:   completed,
	}})
}

func (m focusModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Focus Timer")

	var timeDisplay, phaseLabel, indicator string

	switch m.phase {
	case focusIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(m.workDuration))
		phaseLabel = mutedStyle.Render("Ready to start")
		indicator = mutedStyle.Render("Press s to begin")
	case focusWork:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(m.remaining))
		phaseLabel = accentStyle.Bold(true).Render("FOCUS")
		indicator = m.renderProgress()
	case focusShortBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(m.remaining))
		phaseLabel = successStyle.Bold(true).Render("SHORT BREAK")
		indicator = m.renderProgress()
	case focusLongBreak:
		timeDisplay = highlightStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(m.remaining))
		phaseLabel = highlightStyle.Bold(true).Render("LONG BREAK")
		indicator = m.renderProgress()
	case focusDone:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render("Done!")
		phaseLabel = successStyle.Bold(true).Render("SESSION COMPLETE")
		indicator = m.renderProgress()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		indicator,
		"",
		m.renderHistory(),
	)

	var controls string
	switch m.phase {
	case focusIdle, focusDone:
		controls = mutedStyle.Render("s: start  q: quit")
	case focusWork:
		controls = mutedStyle.Render("x: cancel")
	case focusShortBreak, focusLongBreak:
		controls = mutedStyle.Render("space: skip break  x: cancel")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (m focusModel) renderProgress() string {
	var parts []string
	for i := 0; i < m.targetRounds; i++ {
		if i < m.completedCount {
			parts = append(parts, successStyle.Render("●"))
		} else if i == m.completedCount && m.phase == focusWork {
			parts = append(parts, accentStyle.Render("◐"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", m.completedCount, m.targetRounds))
	return progress + counter
}

func (m focusModel) renderHistory() string {
	sessions := m.mgr.State().FocusSessions
	if len(sessions) == 0 {
		return ""
	}
	var totalToday, countToday int
	now := time.Now()
	for _, s := range sessions {
		if s.StartedAt.Year() == now.Year() && s.StartedAt.YearDay() == now.YearDay() {
			totalToday += s.WorkSeconds
			countToday++
		}
	}
	if countToday == 0 {
		return ""
	}
	return mutedStyle.Render(fmt.Sprintf("Focused today: %d min across %d sessions",
		totalToday/60, countToday))
}
